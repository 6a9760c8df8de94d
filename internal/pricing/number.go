package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// NextInvoiceNumber produces the next sequential invoice number in the form
// {PREFIX}-{year}-{3-digit sequence}. The sequence continues from the trailing
// digits of the previously issued number; an empty or malformed prior number
// restarts the sequence at 1 instead of erroring, leaving the caller to log
// the condition. The helper holds no lock: persisting the result before
// asking for the next one is the caller's job.
func NextInvoiceNumber(prev, prefix string, year int) string {
	seq := 1
	if match := trailingDigits.FindString(strings.TrimSpace(prev)); match != "" {
		if n, err := strconv.Atoi(match); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}
