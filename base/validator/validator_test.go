package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) TestIsValidIdentity() {
	tests := []struct {
		desc       string
		identity   string
		expIsValid bool
	}{
		{
			desc:       "plain identity",
			identity:   "seller1",
			expIsValid: true,
		},
		{
			desc:       "bech32-looking identity",
			identity:   "terra1x46rqay4d3cssq8gxxvqz8xt6nwlz4td20k38v",
			expIsValid: true,
		},
		{
			desc:       "empty",
			identity:   "",
			expIsValid: false,
		},
		{
			desc:       "contains whitespace",
			identity:   "seller 1",
			expIsValid: false,
		},
		{
			desc:       "too long",
			identity:   strings.Repeat("a", 129),
			expIsValid: false,
		},
	}

	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidIdentity(t.identity), t.desc)
	}
}
