package version

import (
	"testing"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CompareTestSuite struct {
	suite.Suite
}

func TestCompareSuite(t *testing.T) {
	suite.Run(t, new(CompareTestSuite))
}

func (suite *CompareTestSuite) TestCheckVersionCompatibility() {
	tests := []struct {
		name          string
		engine        string
		required      string
		code          errors.ErrorCode
		errorContains string
	}{
		{name: "exact match", engine: "1.2.0", required: "1.2.0"},
		{name: "engine patch higher", engine: "1.2.1", required: "1.2.0"},
		{name: "required patch higher", engine: "1.2.0", required: "1.2.5"},
		{name: "v prefix on both", engine: "v0.4.0", required: "v0.4.3"},
		{name: "prerelease engine", engine: "1.2.0-alpha", required: "1.2.0"},
		{name: "engine is main", engine: "main", required: "1.3.0"},
		{name: "required is main", engine: "1.2.0", required: "main"},
		{
			name:          "minor differs",
			engine:        "1.3.0",
			required:      "1.2.0",
			code:          errors.ErrCodeVersionMismatch,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major differs",
			engine:        "2.0.0",
			required:      "1.2.0",
			code:          errors.ErrCodeVersionMismatch,
			errorContains: "major version mismatch",
		},
		{
			name:          "invalid engine version",
			engine:        "not-a-version",
			required:      "1.2.0",
			code:          errors.ErrCodeInvalidVersion,
			errorContains: "invalid engine version",
		},
		{
			name:          "empty required version",
			engine:        "1.2.0",
			required:      "",
			code:          errors.ErrCodeInvalidVersion,
			errorContains: "invalid required version",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := CheckVersionCompatibility(tc.engine, tc.required)
			if tc.code == 0 {
				suite.NoError(err)

				return
			}

			suite.Error(err)
			suite.Equal(tc.code, errors.GetCode(err))
			suite.Contains(err.Error(), tc.errorContains)
		})
	}
}

func (suite *CompareTestSuite) TestGetVersion() {
	original := Version
	defer func() { Version = original }()

	Version = "v9.9.9"
	suite.Equal("v9.9.9", GetVersion())
}
