package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidPeriod, "window must be positive, got %d", -3)
	suite.Equal(ErrCodeInvalidPeriod, err.Code)
	suite.Equal("window must be positive, got -3", err.Message)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("no such file")
	err := Wrapf(ErrCodeDataNotFound, cause, "data file %s", "prices.csv")
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("data file prices.csv", err.Message)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestErrorString() {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"without cause", New(ErrCodeInvalidParameter, "invalid parameter"), "[100] invalid parameter"},
		{"with cause", Wrap(ErrCodeDataNotFound, "data not found", errors.New("boom")), "[200] data not found: boom"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, tc.err.Error())
		})
	}
}

func (suite *ErrorTestSuite) TestGetCode() {
	suite.Equal(ErrCodeInvalidParameter, GetCode(New(ErrCodeInvalidParameter, "x")))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))

	// outermost code wins
	inner := New(ErrCodeDataNotFound, "data not found")
	suite.Equal(ErrCodeIndicatorNotFound, GetCode(Wrap(ErrCodeIndicatorNotFound, "indicator", inner)))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeLengthMismatch, "length mismatch")
	suite.True(HasCode(err, ErrCodeLengthMismatch))
	suite.False(HasCode(err, ErrCodeDataNotFound))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	suite.True(Is(err, cause))

	var target *Error
	suite.True(As(err, &target))
	suite.Equal(ErrCodeQueryFailed, target.Code)
}

func (suite *ErrorTestSuite) TestIsConfigurationError() {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"missing column", NewColumnError("Close", "prices.csv"), true},
		{"unordered data", New(ErrCodeUnorderedData, "unordered"), true},
		{"strategy config", New(ErrCodeStrategyConfigError, "fast >= slow"), true},
		{"backtest config", New(ErrCodeBacktestConfigError, "bad config"), true},
		{"write failure", New(ErrCodeBacktestWriteFailed, "disk full"), false},
		{"plain error", errors.New("plain"), false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, IsConfigurationError(tc.err))
		})
	}
}

func (suite *ErrorTestSuite) TestColumnError() {
	err := NewColumnError("Close", "data/prices.csv")
	suite.Equal(ErrCodeMissingColumn, err.Code)
	suite.True(IsColumnError(err))
	suite.Contains(err.Error(), `column "Close" not found in data/prices.csv`)
	suite.False(IsColumnError(errors.New("other")))
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeDataNotFound)
	suite.Equal(ErrorCode(300), ErrCodeIndicatorNotFound)
	suite.Equal(ErrorCode(400), ErrCodeStrategyNotFound)
	suite.Equal(ErrorCode(601), ErrCodeBacktestInitFailed)
	suite.Equal(ErrorCode(800), ErrCodeCallbackFailed)
}
