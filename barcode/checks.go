package barcode

import (
	"regexp"
	"strings"

	"github.com/osamingo/checkdigit"
)

var (
	ean8   = checkdigit.NewEAN8()
	ean13  = checkdigit.NewEAN13()
	upc    = checkdigit.NewUPC()
	itf    = checkdigit.NewITF()
	isbn10 = checkdigit.NewISBN10()
	isbn13 = checkdigit.NewISBN13()

	code39Pattern = regexp.MustCompile(`^[0-9A-Z\-. $/+%]+$`)
)

// compact drops the separators people type between digit groups.
func compact(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func checkEAN8(number string) bool {
	n := compact(number)
	return len(n) == 8 && isDigits(n) && ean8.Verify(n)
}

func checkEAN13(number string) bool {
	n := compact(number)
	return len(n) == 13 && isDigits(n) && ean13.Verify(n)
}

func checkUPC(number string) bool {
	n := compact(number)
	return len(n) == 12 && isDigits(n) && upc.Verify(n)
}

// checkEAN accepts any GTIN length: EAN-8, UPC-A, EAN-13 and GTIN-14.
func checkEAN(number string) bool {
	n := compact(number)
	if !isDigits(n) {
		return false
	}
	switch len(n) {
	case 8:
		return ean8.Verify(n)
	case 12:
		return upc.Verify(n)
	case 13:
		return ean13.Verify(n)
	case 14:
		return itf.Verify(n)
	}
	return false
}

func checkJAN(number string) bool {
	n := compact(number)
	switch len(n) {
	case 13:
		return (strings.HasPrefix(n, "45") || strings.HasPrefix(n, "49")) && checkEAN13(n)
	case 8:
		return checkEAN8(n)
	}
	return false
}

// checkGS1 applies the GS1 mod-10 rule to every GS1 identification key
// length that ends in a check digit.
func checkGS1(number string) bool {
	n := compact(number)
	switch len(n) {
	case 8, 12, 13, 14, 17, 18:
	default:
		return false
	}
	if !isDigits(n) {
		return false
	}
	sum := 0
	for i := len(n) - 2; i >= 0; i-- {
		d := int(n[i] - '0')
		if (len(n)-2-i)%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10-sum%10)%10 == int(n[len(n)-1]-'0')
}

func checkISBN10(number string) bool {
	n := strings.ToUpper(compact(number))
	return len(n) == 10 && isDigits(n[:9]) && isbn10.Verify(n)
}

func checkISBN13(number string) bool {
	n := compact(number)
	if len(n) != 13 || !isDigits(n) {
		return false
	}
	if !strings.HasPrefix(n, "978") && !strings.HasPrefix(n, "979") {
		return false
	}
	return isbn13.Verify(n)
}

func checkISBN(number string) bool {
	switch len(compact(number)) {
	case 10:
		return checkISBN10(number)
	case 13:
		return checkISBN13(number)
	}
	return false
}

// checkISSN verifies the mod-11 check character of an 8 character ISSN.
func checkISSN(number string) bool {
	n := strings.ToUpper(compact(number))
	if len(n) != 8 || !isDigits(n[:7]) {
		return false
	}
	sum := 0
	for i := 0; i < 7; i++ {
		sum += int(n[i]-'0') * (8 - i)
	}
	check := (11 - sum%11) % 11
	if check == 10 {
		return n[7] == 'X'
	}
	return int(n[7]-'0') == check && n[7] >= '0' && n[7] <= '9'
}

// checkPZN verifies a German Pharmazentralnummer, PZN-7 or PZN-8.
func checkPZN(number string) bool {
	n := compact(number)
	if !isDigits(n) || (len(n) != 7 && len(n) != 8) {
		return false
	}
	// PZN-7 weights start at 2, PZN-8 at 1.
	weight := 2
	if len(n) == 8 {
		weight = 1
	}
	sum := 0
	for i := 0; i < len(n)-1; i++ {
		sum += int(n[i]-'0') * (weight + i)
	}
	check := sum % 11
	if check == 10 {
		return false
	}
	return int(n[len(n)-1]-'0') == check
}

func checkCode39(number string) bool {
	return code39Pattern.MatchString(strings.TrimSpace(number))
}
