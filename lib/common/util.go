package common

import (
	"encoding/json"
	"net/url"
	"os"

	uuid "github.com/satori/go.uuid"
)

func GetUniqueIDFromUUID() string {
	return uuid.Must(uuid.NewV1(), nil).String()
}

func GenerateUUID() string {
	return uuid.Must(uuid.NewV4(), nil).String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

// InStringArray will check the existence of `s` in `a` and it returns the
// index of the found item
func InStringArray(a []string, s string) (index int, found bool) {
	index = -1
	for i, n := range a {
		if n == s {
			index = i
			found = true
			return
		}
	}

	return
}

func GetUrlQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) > 0 {
		return v
	}

	return defaultValue
}

//
// Function to wrap calls to `json.Unmarshal` that cannot fail
//
// This function should only be used when doing calls that cannot fail,
// e.g. reading the content of the on-disk storage which was serialized by
// mutualpool. It ensures no silent corruption of data can happen
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

func JSONMarshalIndent(o interface{}) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

func IsExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func IsNotExists(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
