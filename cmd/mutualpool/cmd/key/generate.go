package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/mutualnet/mutualpool/cmd/mutualpool/common"
	"github.com/mutualnet/mutualpool/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type generatedKey struct {
	Seed       string  `json:"seed"`
	Address    string  `json:"address"`
	Passphrase *string `json:"passphrase,omitempty"`
}

func defaultEncode(v interface{}, w io.Writer) error {
	t := template.Must(template.New("").Funcs(template.FuncMap{
		"valueString": func(input *string) string {
			if input == nil {
				return ""
			}
			return *input
		},
	}).Parse(`    Secret Seed: {{ .Seed }}
 Public Address: {{ .Address }}{{ if valueString .Passphrase }}
     Passphrase: "{{ .Passphrase|valueString }}"{{ end }}
`))
	return t.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(generatedKey)
	fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return nil
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			var passphrase *string
			input := strings.TrimSpace(strings.Join(args, " "))

			if flagParse && len(input) == 0 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			kp, err := generateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<input>", fmt.Errorf("failed to parse secret seed: %v", err))
			}
			if !flagParse && len(input) > 0 {
				passphrase = &input
			}

			encoders := map[string]common.Encode{
				"json":       common.DefaultEncodes["json"],
				"prettyjson": common.DefaultEncodes["prettyjson"],
				"default":    defaultEncode,
				"oneline":    onelineEncode,
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", fmt.Errorf(`"%s" not recognized`, flagFormat))
			}

			if err := encode(generatedKey{
				Seed:       kp.Seed(),
				Address:    kp.Address(),
				Passphrase: passphrase,
			}, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format={default, json, oneline, prettyjson}")
}

// generateKP makes a fresh random keypair, recovers one from a secret
// seed when fromSeed is set, or derives one deterministically from a
// passphrase otherwise.
func generateKP(seedOrPassphrase string, fromSeed bool) (full *keypair.Full, err error) {
	if len(seedOrPassphrase) == 0 {
		full = keypair.Random()
		return
	}

	if fromSeed {
		var kp keypair.KP
		if kp, err = keypair.Parse(seedOrPassphrase); err != nil {
			return
		}
		var ok bool
		if full, ok = kp.(*keypair.Full); !ok {
			err = fmt.Errorf("not a secret seed")
		}
		return
	}

	full = keypair.Master(seedOrPassphrase).(*keypair.Full)
	return
}
