package ldb

import (
	"reflect"
	"testing"
)

func prepareDatabaseForTest(t *testing.T, testName string) (*LevelDB, func()) {
	ldb, err := NewLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly failed: %s", testName, err)
	}
	teardownFunc := func() {
		err := ldb.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
	}
	return ldb, teardownFunc
}

func TestLevelDBSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBSanity")
	defer teardownFunc()

	// Put something into the db
	key := []byte("key")
	putData := []byte("Hello world!")
	err := ldb.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned "+
			"unexpected error: %s", err)
	}

	// Get from the key previously put to
	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned "+
			"unexpected error: %s", err)
	}

	// Make sure that the put data and the get data are equal
	if !reflect.DeepEqual(getData, putData) {
		t.Fatalf("TestLevelDBSanity: get data and "+
			"put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}

	exists, err := ldb.Has(key)
	if err != nil || !exists {
		t.Fatalf("TestLevelDBSanity: Has returned (%t, %v)", exists, err)
	}

	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Delete returned "+
			"unexpected error: %s", err)
	}
	getData, err = ldb.Get(key)
	if err != nil || getData != nil {
		t.Fatalf("TestLevelDBSanity: Get after Delete returned (%x, %v)",
			getData, err)
	}
}

func TestLevelDBKeys(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBKeys")
	defer teardownFunc()

	for _, key := range []string{"tx-b", "block-a", "tx-a", "tx"} {
		err := ldb.Put([]byte(key), []byte{1})
		if err != nil {
			t.Fatalf("TestLevelDBKeys: Put returned unexpected error: %s", err)
		}
	}

	keys, err := ldb.Keys([]byte("tx-"))
	if err != nil {
		t.Fatalf("TestLevelDBKeys: Keys returned unexpected error: %s", err)
	}
	want := [][]byte{[]byte("tx-a"), []byte("tx-b")}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("TestLevelDBKeys: got %q want %q", keys, want)
	}
}

func TestLevelDBTransactionSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBTransactionSanity")
	defer teardownFunc()

	// Begin a new transaction
	tx, err := ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Begin "+
			"unexpectedly failed: %s", err)
	}

	// Put something into the transaction
	key := []byte("key")
	putData := []byte("Hello world!")
	err = tx.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put "+
			"returned unexpected error: %s", err)
	}

	// Neither the transaction's snapshot nor the database
	// see the write before commit
	getData, err := tx.Get(key)
	if err != nil || getData != nil {
		t.Fatalf("TestLevelDBTransactionSanity: transaction Get "+
			"before commit returned (%x, %v)", getData, err)
	}
	getData, err = ldb.Get(key)
	if err != nil || getData != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Get "+
			"before commit returned (%x, %v)", getData, err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Commit "+
			"returned unexpected error: %s", err)
	}
	if tx.Put(key, putData) == nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put into a " +
			"committed transaction unexpectedly succeeded")
	}
	if tx.RollbackUnlessClosed() != nil {
		t.Fatalf("TestLevelDBTransactionSanity: RollbackUnlessClosed " +
			"failed on a committed transaction")
	}

	getData, err = ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Get "+
			"returned unexpected error: %s", err)
	}
	if !reflect.DeepEqual(getData, putData) {
		t.Fatalf("TestLevelDBTransactionSanity: get data and "+
			"put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}
}

func TestLevelDBTransactionRollback(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBTransactionRollback")
	defer teardownFunc()

	tx, err := ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionRollback: Begin "+
			"unexpectedly failed: %s", err)
	}
	key := []byte("key")
	err = tx.Put(key, []byte("discarded"))
	if err != nil {
		t.Fatalf("TestLevelDBTransactionRollback: Put "+
			"returned unexpected error: %s", err)
	}
	err = tx.Rollback()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionRollback: Rollback "+
			"returned unexpected error: %s", err)
	}
	if tx.Commit() == nil {
		t.Fatalf("TestLevelDBTransactionRollback: Commit after " +
			"Rollback unexpectedly succeeded")
	}

	exists, err := ldb.Has(key)
	if err != nil || exists {
		t.Fatalf("TestLevelDBTransactionRollback: Has returned (%t, %v)",
			exists, err)
	}
}
