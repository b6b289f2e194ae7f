package utils

import (
	"fmt"
	"strconv"
)

// FormatProductID renders the n-th product id ("1", "2", ...)
func FormatProductID(n int) string {
	return strconv.Itoa(n)
}

// FormatBoletaID renders the n-th boleta id ("B001", "B002", ...).
// Ids past B999 simply grow wider.
func FormatBoletaID(n int) string {
	return fmt.Sprintf("B%03d", n)
}
