package storage

import "os"

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}

func NewTestStorage() *LevelDBBackend {
	st, err := NewStorage(&Config{Scheme: "memory"})
	if err != nil {
		panic(err)
	}

	return st
}
