package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		address string
		want    Code
		ok      bool
	}{
		{"seoul official", "서울특별시 강남구 테헤란로 123", Seoul, true},
		{"seoul short", "서울 송파구", Seoul, true},
		{"gyeonggi", "경기도 성남시 분당구", Gyeonggi, true},
		{"gyeonggi gwangju is gyeonggi", "경기도 광주시 오포읍", Gyeonggi, true},
		{"gwangju metro", "광주광역시 서구", Gwangju, true},
		{"gwangju bare", "광주 북구", Gwangju, true},
		{"incheon", "인천광역시 연수구", Incheon, true},
		{"busan short", "부산 해운대구", Busan, true},
		{"jeonbuk special", "전북특별자치도 전주시", Jeonbuk, true},
		{"jeonbuk old name", "전라북도 전주시", Jeonbuk, true},
		{"jeju", "제주특별자치도 제주시", Jeju, true},
		{"sejong", "세종특별자치시 한솔동", Sejong, true},
		{"unclassifiable", "테헤란로 123", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(tc.address)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInRegions(t *testing.T) {
	regions := []Code{Seoul, Gyeonggi}

	assert.True(t, InRegions("서울 강남구", regions))
	assert.True(t, InRegions("경기도 수원시", regions))
	assert.False(t, InRegions("부산 해운대구", regions))

	// unclassifiable addresses never match, even with every region listed
	all := []Code{
		Seoul, Gyeonggi, Incheon, Gangwon, Chungbuk, Chungnam, Sejong, Daejeon,
		Jeonbuk, Jeonnam, Gwangju, Gyeongbuk, Gyeongnam, Daegu, Ulsan, Busan, Jeju,
	}
	assert.False(t, InRegions("어딘가 모르는 곳", all))
	assert.False(t, InRegions("서울 강남구", nil))
}

func TestParseCode(t *testing.T) {
	code, err := ParseCode("seoul")
	require.NoError(t, err)
	assert.Equal(t, Seoul, code)

	_, err = ParseCode("ATLANTIS")
	assert.ErrorIs(t, err, ErrInvalidCode)
}
