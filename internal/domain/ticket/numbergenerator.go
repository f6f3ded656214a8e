package ticket

import (
	"fmt"
	"strconv"
)

// DefaultNumberWidth is the digit count of the highest number in a pool of
// total tickets, so 100 tickets use "00".."99" and 10000 use "0000".."9999".
func DefaultNumberWidth(total int) int {
	if total <= 1 {
		return 1
	}
	return len(strconv.Itoa(total - 1))
}

// NumberCapacity is the count of distinct numbers representable in width digits.
func NumberCapacity(width int) int {
	capacity := 1
	for i := 0; i < width; i++ {
		capacity *= 10
	}
	return capacity
}

// FormatNumber zero-pads n to width digits. Lexical order of the result
// matches numeric order for a fixed width.
func FormatNumber(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// NumberRange lists the formatted numbers in [from, to).
func NumberRange(from, to, width int) []string {
	if to <= from {
		return nil
	}
	numbers := make([]string, 0, to-from)
	for n := from; n < to; n++ {
		numbers = append(numbers, FormatNumber(n, width))
	}
	return numbers
}
