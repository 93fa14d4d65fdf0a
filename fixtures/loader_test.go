package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anthropics/binschema/cursor"
	"github.com/anthropics/binschema/schema"
)

func TestLoadTestSuiteRunsRoundTripAgainstCompiledSchema(t *testing.T) {
	suite, err := LoadTestSuite("../testdata/person.fixture.json5")
	require.NoError(t, err)
	require.Equal(t, "person", suite.Name)
	require.Len(t, suite.TestCases, 1)

	result, err := schema.CompileJSON5(suite.Schema, nil)
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	for _, tc := range suite.TestCases {
		t.Run(tc.Description, func(t *testing.T) {
			s := result.Structs[tc.Struct]
			require.NotNil(t, s)

			wantBytes, err := tc.Bytes()
			require.NoError(t, err)

			internal, err := s.FromObject(tc.Value.(map[string]interface{}))
			require.NoError(t, err)

			w := cursor.NewWriter()
			require.NoError(t, s.AppendBytes(w, internal))
			require.Equal(t, wantBytes, w.Bytes())

			decoded, err := s.FromBytes(cursor.NewReader(wantBytes))
			require.NoError(t, err)
			back, err := s.ToObject(decoded, nil)
			require.NoError(t, err)
			require.Equal(t, tc.Value, back)
		})
	}
}

func TestLoadAllTestSuitesFindsFixtureFiles(t *testing.T) {
	suites, err := LoadAllTestSuites("../testdata")
	require.NoError(t, err)
	require.NotEmpty(t, suites)
}
