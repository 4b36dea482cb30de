package types

import (
	"encoding/gob"
	"sync"
)

var gobOnce sync.Once

// GobRegisterTypes registers every Value implementation so tuples can be
// gob encoded as []Value.
func GobRegisterTypes() {
	gobOnce.Do(func() {
		gob.Register(Long(0))
		gob.Register(Integer(0))
		gob.Register(Short(0))
		gob.Register(Byte(0))
		gob.Register(Double(0))
		gob.Register(Float(0))
		gob.Register(Char(0))
		gob.Register(String(""))
	})
}
