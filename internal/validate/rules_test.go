package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{" user@example.com ", true},
		{"user@example", false},
		{"@example.com", false},
		{"user example.com", false},
		{"", false},
	}
	for _, tc := range testCases {
		ok, _ := Email(tc.input)
		assert.Equal(t, tc.want, ok, "input %q", tc.input)
	}
}

func TestPhone(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"0123456789", true},
		{"+7 (912) 345-67-89", true},
		{"(020) 1234 5678", true},
		{"123456789012345", true},
		{"123456789", false},
		{"1234567890123456", false},
		{"12345abcde", false},
		{"", false},
	}
	for _, tc := range testCases {
		ok, _ := Phone(tc.input)
		assert.Equal(t, tc.want, ok, "input %q", tc.input)
	}
}

func TestAirportCode(t *testing.T) {
	for input, want := range map[string]bool{
		"SVO": true, "led": true, " JFK ": true, "EGLL": true,
		"SV": false, "SVOXX": false, "SV1": false, "": false,
	} {
		ok, _ := AirportCode(input)
		assert.Equal(t, want, ok, "input %q", input)
	}
}

func TestCompanyCode(t *testing.T) {
	for input, want := range map[string]bool{
		"SU": true, "ba": true, "S7": true, "DLH42": true,
		"A": false, "AIRWAY": false, "A-B": false, "": false,
	} {
		ok, _ := CompanyCode(input)
		assert.Equal(t, want, ok, "input %q", input)
	}
}

func TestFlightCode_FreeForm(t *testing.T) {
	ok, _ := FlightCode("su-100/a")
	assert.True(t, ok, "flight codes are free-form")

	ok, _ = FlightCode("   ")
	assert.False(t, ok)
}

func TestLengths(t *testing.T) {
	ok, _ := MinLen("abc", 3)
	assert.True(t, ok)
	ok, _ = MinLen("ab", 3)
	assert.False(t, ok)
	ok, _ = MaxLen("abc", 3)
	assert.True(t, ok)
	ok, _ = MaxLen("abcd", 3)
	assert.False(t, ok)
}

func TestInts(t *testing.T) {
	ok, _ := PositiveInt(1)
	assert.True(t, ok)
	ok, _ = PositiveInt(0)
	assert.False(t, ok)
	ok, _ = NonNegativeInt(0)
	assert.True(t, ok)
	ok, _ = NonNegativeInt(-1)
	assert.False(t, ok)
}

func TestDateOfBirth(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		dob  time.Time
		want bool
	}{
		{"thirty years old", now.AddDate(-30, 0, 0), true},
		{"exactly twelve", now.AddDate(-12, 0, 0), true},
		{"exactly one hundred twenty", now.AddDate(-120, 0, 0), true},
		{"eleven years old", now.AddDate(-11, 0, 0), false},
		{"born tomorrow", now.AddDate(0, 0, 1), false},
		{"older than 120", now.AddDate(-121, 0, 0), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, _ := DateOfBirth(tc.dob, now)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestFutureDate(t *testing.T) {
	now := time.Now()
	ok, _ := FutureDate(now.Add(time.Hour), now)
	assert.True(t, ok)
	ok, _ = FutureDate(now.Add(-time.Hour), now)
	assert.False(t, ok)
	ok, _ = FutureDate(now, now)
	assert.False(t, ok)
}

func TestBounds(t *testing.T) {
	ok, _ := PriceCents(1)
	assert.True(t, ok)
	ok, _ = PriceCents(MaxPriceCents)
	assert.True(t, ok)
	ok, _ = PriceCents(MaxPriceCents + 1)
	assert.False(t, ok)
	ok, _ = PriceCents(0)
	assert.False(t, ok)

	ok, _ = Capacity(1)
	assert.True(t, ok)
	ok, _ = Capacity(MaxCapacity)
	assert.True(t, ok)
	ok, _ = Capacity(0)
	assert.False(t, ok)
	ok, _ = Capacity(MaxCapacity + 1)
	assert.False(t, ok)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SVO", NormalizeCode(" svo "))
}
