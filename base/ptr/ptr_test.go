package ptr

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}

func (s *pointerSuite) TestPointer() {
	p1 := String(`tok1`)
	p2 := Int(123)
	p3 := Int32(4567)
	p4 := Int64(891011)
	p5 := Uint64(15780000)
	p6 := Bool(true)

	s.Equal(*p1, `tok1`)
	s.Equal(*p2, int(123))
	s.Equal(*p3, int32(4567))
	s.Equal(*p4, int64(891011))
	s.Equal(*p5, uint64(15780000))
	s.Equal(*p6, true)
}
