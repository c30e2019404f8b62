package storage

import (
	"fmt"
	"io/ioutil"
	"reflect"
	"testing"
)

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("/tmp", "mutualpool")
	defer CleanDB(path)

	st := &LevelDBBackend{}
	defer st.Close()

	config, _ := NewConfigFromString(fmt.Sprintf("file://%s", path))
	if err := st.Init(config); err != nil {
		t.Errorf("failed to initialize file db: %v", err)
	}
}

func TestLevelDBBackendInitMemStorage(t *testing.T) {
	st := &LevelDBBackend{}
	defer st.Close()

	config, _ := NewConfigFromString("memory://")
	if err := st.Init(config); err != nil {
		t.Errorf("failed to initialize mem db: %v", err)
	}
}

func TestLevelDBBackendNew(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	input := map[int]string{
		90: "99",
		91: "91",
		92: "92",
	}
	if err := st.New(key, input); err != nil {
		t.Errorf("failed to 'New' in leveldb: %v", err)
		return
	}

	fetched := map[int]string{}
	err := st.Get(key, &fetched)
	if err != nil {
		t.Errorf("failed to 'Get' in leveldb: %v", err)
		return
	}

	if !reflect.DeepEqual(input, fetched) {
		t.Errorf("failed to 'Get' the same input in leveldb")
		return
	}

	if err := st.New(key, input); err == nil {
		t.Errorf("'New' only for new key in leveldb")
		return
	}
}

func TestLevelDBBackendHas(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	if exists, _ := st.Has(key); exists {
		t.Error("failed to 'Has' in leveldb")
		return
	}

	st.New(key, 10)

	if exists, _ := st.Has(key); !exists {
		t.Error("failed to 'Has' in leveldb")
		return
	}

	st.Remove(key)
	if exists, _ := st.Has(key); exists {
		t.Error("failed to 'Has' in leveldb")
		return
	}
}

func TestLevelDBBackendGetIterator(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	total := 30
	prefix := "item-"
	for i := 0; i < total; i++ {
		st.New(fmt.Sprintf("%s%03d", prefix, i), i)
	}

	var collected []uint64
	iterFunc, closeFunc := st.GetIterator(prefix, false)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		collected = append(collected, item.N)
	}
	closeFunc()

	if len(collected) != total {
		t.Errorf("iterator returned %d items, expected %d", len(collected), total)
	}

	// reverse iteration must start from the last key
	iterFunc, closeFunc = st.GetIterator(prefix, true)
	item, hasNext := iterFunc()
	closeFunc()
	if !hasNext {
		t.Error("reverse iterator returned nothing")
	}
	if string(item.Key) != fmt.Sprintf("%s%03d", prefix, total-1) {
		t.Errorf("reverse iterator started at %s", string(item.Key))
	}
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	if err := st.New("outside", "committed"); err != nil {
		t.Errorf("failed to 'New': %v", err)
	}

	{ // discarded transaction must leave no trace
		ts, err := st.OpenTransaction()
		if err != nil {
			t.Errorf("failed to open transaction: %v", err)
		}
		if err := ts.New("inside", "discarded"); err != nil {
			t.Errorf("failed to 'New' in transaction: %v", err)
		}
		if err := ts.Discard(); err != nil {
			t.Errorf("failed to discard transaction: %v", err)
		}

		if exists, _ := st.Has("inside"); exists {
			t.Error("discarded transaction leaked into storage")
		}
	}

	{ // committed transaction must be visible
		ts, err := st.OpenTransaction()
		if err != nil {
			t.Errorf("failed to open transaction: %v", err)
		}
		if err := ts.New("inside", "committed"); err != nil {
			t.Errorf("failed to 'New' in transaction: %v", err)
		}
		if err := ts.Commit(); err != nil {
			t.Errorf("failed to commit transaction: %v", err)
		}

		var fetched string
		if err := st.Get("inside", &fetched); err != nil {
			t.Errorf("failed to 'Get' committed record: %v", err)
		}
		if fetched != "committed" {
			t.Errorf("unexpected value: %s", fetched)
		}
	}
}
