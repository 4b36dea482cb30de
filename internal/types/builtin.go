package types

import (
	"fmt"
	"slices"
	"strings"
)

var VALID_DOMAINS = []Domain{
	DomainLong, DomainInteger, DomainShort, DomainByte,
	DomainDouble, DomainFloat, DomainCharacter, DomainString,
}

type Domain string

const (
	DomainLong      Domain = "Long"    // int64
	DomainInteger   Domain = "Integer" // int32
	DomainShort     Domain = "Short"   // int16
	DomainByte      Domain = "Byte"    // int8
	DomainDouble    Domain = "Double"  // float64
	DomainFloat     Domain = "Float"   // float32
	DomainCharacter Domain = "Character"
	DomainString    Domain = "String"
)

func (d Domain) IsValid() bool {
	return slices.Contains(VALID_DOMAINS, d)
}

// rank orders values of different domains; it follows VALID_DOMAINS.
func (d Domain) rank() int {
	return slices.Index(VALID_DOMAINS, d)
}

func (d Domain) IsInteger() bool {
	switch d {
	case DomainLong, DomainInteger, DomainShort, DomainByte:
		return true
	}
	return false
}

func (d Domain) IsReal() bool {
	return d == DomainDouble || d == DomainFloat
}

func ParseDomain(name string) (Domain, error) {
	d := Domain(strings.TrimSpace(name))
	if !d.IsValid() {
		return "", fmt.Errorf("%s is not a valid domain", name)
	}
	return d, nil
}

// ParseDomains parses a space separated list such as "String Integer Long".
func ParseDomains(names string) ([]Domain, error) {
	fields := strings.Fields(names)
	domains := make([]Domain, len(fields))
	for i, name := range fields {
		d, err := ParseDomain(name)
		if err != nil {
			return nil, err
		}
		domains[i] = d
	}
	return domains, nil
}
