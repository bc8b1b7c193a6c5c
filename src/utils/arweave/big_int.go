package arweave

import (
	"encoding/json"
	"errors"
	"math/big"
)

// Winston amounts. Serialized as decimal strings on the wire.
type BigInt struct {
	big.Int
}

func BigIntFromUint64(v uint64) (out BigInt) {
	out.SetUint64(v)
	return
}

func BigIntFromString(s string) (out BigInt, err error) {
	_, ok := out.SetString(s, 10)
	if !ok {
		err = errors.New("malformed decimal string")
	}
	return
}

func (self *BigInt) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		// Some endpoints return plain numbers
		return self.Int.UnmarshalJSON(data)
	}
	_, ok := self.SetString(s, 10)
	if !ok {
		return errors.New("malformed decimal string")
	}
	return nil
}

func (self BigInt) MarshalJSON() (out []byte, err error) {
	return json.Marshal(self.String())
}
