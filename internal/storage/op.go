package storage

// OpKind selects what an Op does.
type OpKind int

const (
	OpSet OpKind = iota
	OpDelete
	OpClear
)

func (k OpKind) String() string {
	switch k {
	case OpSet:
		return "set"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Op is one write in an atomic batch.
type Op struct {
	Kind  OpKind
	Key   string
	Value []byte
}

// SetOp writes value (raw JSON) under key.
func SetOp(key string, value []byte) Op {
	return Op{Kind: OpSet, Key: key, Value: value}
}

// DeleteOp removes key. Removing an absent key is not an error.
func DeleteOp(key string) Op {
	return Op{Kind: OpDelete, Key: key}
}

// ClearOp removes every key.
func ClearOp() Op {
	return Op{Kind: OpClear}
}
