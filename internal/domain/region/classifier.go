package region

import "strings"

// pattern pairs a city-name substring with the region it belongs to.
type pattern struct {
	text string
	code Code
}

// classifierTable is scanned top to bottom; the first substring found in
// the address wins. Ordering is the only guard against ambiguous
// prefixes, so longer and more specific variants must come before
// shorter ones ("경기도" before "경기", "서울특별시" before "서울") and
// the Gyeonggi entries must precede city names that also exist inside
// Gyeonggi (e.g. "경기도 광주시" vs the Gwangju metropolitan city).
var classifierTable = []pattern{
	{"서울특별시", Seoul},
	{"서울시", Seoul},
	{"서울", Seoul},
	{"경기도", Gyeonggi},
	{"경기", Gyeonggi},
	{"인천광역시", Incheon},
	{"인천시", Incheon},
	{"인천", Incheon},
	{"강원특별자치도", Gangwon},
	{"강원도", Gangwon},
	{"강원", Gangwon},
	{"충청북도", Chungbuk},
	{"충북", Chungbuk},
	{"충청남도", Chungnam},
	{"충남", Chungnam},
	{"세종특별자치시", Sejong},
	{"세종시", Sejong},
	{"세종", Sejong},
	{"대전광역시", Daejeon},
	{"대전시", Daejeon},
	{"대전", Daejeon},
	{"전북특별자치도", Jeonbuk},
	{"전라북도", Jeonbuk},
	{"전북", Jeonbuk},
	{"전라남도", Jeonnam},
	{"전남", Jeonnam},
	{"광주광역시", Gwangju},
	{"광주", Gwangju},
	{"경상북도", Gyeongbuk},
	{"경북", Gyeongbuk},
	{"경상남도", Gyeongnam},
	{"경남", Gyeongnam},
	{"대구광역시", Daegu},
	{"대구시", Daegu},
	{"대구", Daegu},
	{"울산광역시", Ulsan},
	{"울산시", Ulsan},
	{"울산", Ulsan},
	{"부산광역시", Busan},
	{"부산시", Busan},
	{"부산", Busan},
	{"제주특별자치도", Jeju},
	{"제주도", Jeju},
	{"제주", Jeju},
}

// Classify maps a free-text address to a region code by ordered
// substring search. The second return is false when no pattern matches.
// This is deliberately substring-based, not structured address parsing.
func Classify(address string) (Code, bool) {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return "", false
	}
	for _, p := range classifierTable {
		if strings.Contains(addr, p.text) {
			return p.code, true
		}
	}
	return "", false
}

// InRegions reports whether the address classifies into one of the
// given regions. Unclassifiable addresses never match.
func InRegions(address string, regions []Code) bool {
	code, ok := Classify(address)
	if !ok {
		return false
	}
	for _, r := range regions {
		if r == code {
			return true
		}
	}
	return false
}
