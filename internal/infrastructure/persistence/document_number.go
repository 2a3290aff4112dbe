package persistence

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const documentNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Document number prefixes used by the repositories
const (
	SalesOrderPrefix    = "SO-"
	PurchaseOrderPrefix = "PO-"
	ShipmentPrefix      = "TRK-"
	ReturnPrefix        = "RET-"
)

// NextDocumentNumber generates a document number of the form
// <prefix><base-36 millisecond timestamp><4 random base-36 characters>.
// Collision-resistant for human-scale order volumes, not cryptographic.
func NextDocumentNumber(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = documentNumberAlphabet[rand.Intn(len(documentNumberAlphabet))]
	}

	return prefix + ts + string(suffix)
}
