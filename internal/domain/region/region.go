package region

import (
	"errors"
	"strings"
)

// Code is one of the fixed administrative regions used for geographic
// eligibility matching. Matching never goes beyond exact code membership.
type Code string

const (
	Seoul     Code = "SEOUL"
	Gyeonggi  Code = "GYEONGGI"
	Incheon   Code = "INCHEON"
	Gangwon   Code = "GANGWON"
	Chungbuk  Code = "CHUNGBUK"
	Chungnam  Code = "CHUNGNAM"
	Sejong    Code = "SEJONG"
	Daejeon   Code = "DAEJEON"
	Jeonbuk   Code = "JEONBUK"
	Jeonnam   Code = "JEONNAM"
	Gwangju   Code = "GWANGJU"
	Gyeongbuk Code = "GYEONGBUK"
	Gyeongnam Code = "GYEONGNAM"
	Daegu     Code = "DAEGU"
	Ulsan     Code = "ULSAN"
	Busan     Code = "BUSAN"
	Jeju      Code = "JEJU"
)

var ErrInvalidCode = errors.New("invalid region code")

// ParseCode normalizes (uppercases+trims) and validates a region code string.
func ParseCode(s string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(s)))
	if code.Valid() {
		return code, nil
	}
	return "", ErrInvalidCode
}

// Valid reports whether code is one of the allowed region constants.
func (code Code) Valid() bool {
	switch code {
	case Seoul, Gyeonggi, Incheon, Gangwon, Chungbuk, Chungnam, Sejong,
		Daejeon, Jeonbuk, Jeonnam, Gwangju, Gyeongbuk, Gyeongnam,
		Daegu, Ulsan, Busan, Jeju:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Code.
func (code Code) String() string {
	return string(code)
}
