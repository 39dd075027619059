package api

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// MIMEApplicationCBOR is the content type of CBOR encoded snapshots
const MIMEApplicationCBOR = "application/cbor"

// encMode encodes snapshots deterministically so identical readings
// produce identical bytes.
var encMode cbor.EncMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeUnix,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
}

// marshalCBOR encodes v with the snapshot encoder mode
func marshalCBOR(v any) ([]byte, error) {
	return encMode.Marshal(v)
}
