package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PositionTestSuite struct {
	suite.Suite
}

func TestPositionSuite(t *testing.T) {
	suite.Run(t, new(PositionTestSuite))
}

func (suite *PositionTestSuite) TestPositionValues() {
	suite.Equal(Position(0), PositionNone)
	suite.Equal(Position(1), PositionLong)
	suite.Equal(Position(-1), PositionShort)
}

func (suite *PositionTestSuite) TestPositionFromSum() {
	tests := []struct {
		sum      int
		expected Position
	}{
		{-3, PositionShort},
		{-1, PositionShort},
		{0, PositionNone},
		{1, PositionLong},
		{2, PositionLong},
	}

	for _, tc := range tests {
		suite.Equal(tc.expected, PositionFromSum(tc.sum), "sum %d", tc.sum)
	}
}

func (suite *PositionTestSuite) TestApply() {
	tests := []struct {
		name     string
		from     Position
		signal   Signal
		expected Position
	}{
		{"open long", PositionNone, SignalBuy, PositionLong},
		{"open short", PositionNone, SignalSell, PositionShort},
		{"flatten long", PositionLong, SignalSell, PositionNone},
		{"reverse into long", PositionShort, SignalReverseLong, PositionLong},
		{"reverse into short", PositionLong, SignalReverseShort, PositionShort},
		{"repeated buy saturates", PositionLong, SignalBuy, PositionLong},
		{"repeated sell saturates", PositionShort, SignalSell, PositionShort},
		{"hold", PositionLong, SignalHold, PositionLong},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, tc.from.Apply(tc.signal))
		})
	}
}

func (suite *PositionTestSuite) TestFoldIsStepwise() {
	signals := []Signal{SignalBuy, SignalBuy, SignalSell}
	expected := []Position{PositionLong, PositionLong, PositionNone}

	position := PositionNone
	sum := 0

	for i, signal := range signals {
		position = position.Apply(signal)
		sum += int(signal)

		suite.Equal(expected[i], position, "step %d", i)
	}

	// clamping the running sum would still be long
	suite.Equal(PositionLong, PositionFromSum(sum))
}

func (suite *PositionTestSuite) TestExposureAndString() {
	suite.Equal(1.0, PositionLong.Exposure())
	suite.Equal(-1.0, PositionShort.Exposure())
	suite.Equal(0.0, PositionNone.Exposure())
	suite.Equal("LONG", PositionLong.String())
	suite.Equal("SHORT", PositionShort.String())
	suite.Equal("NONE", PositionNone.String())
}

func (suite *PositionTestSuite) TestCSV() {
	value, err := PositionShort.MarshalCSV()
	suite.NoError(err)
	suite.Equal("-1", value)

	var p Position
	suite.NoError(p.UnmarshalCSV("1"))
	suite.Equal(PositionLong, p)
	suite.Error(p.UnmarshalCSV("2"))
}
