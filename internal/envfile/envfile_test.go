package envfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/confsync/internal/envfile"
	"github.com/temirov/confsync/internal/shared"
)

func TestLoadBehaviors(testInstance *testing.T) {
	testCases := []struct {
		name                string
		existingEnvironment map[string]string
		fileContents        string
		expectedEnvironment map[string]string
	}{
		{
			name:                "file_entries_added",
			existingEnvironment: map[string]string{},
			fileContents:        "CONFSYNC_TOOLS_SYNC_ROOT=package.json\nCONFSYNC_COMMON_LOG_LEVEL=debug\n",
			expectedEnvironment: map[string]string{
				"CONFSYNC_TOOLS_SYNC_ROOT":  "package.json",
				"CONFSYNC_COMMON_LOG_LEVEL": "debug",
			},
		},
		{
			name:                "existing_entries_win",
			existingEnvironment: map[string]string{"CONFSYNC_COMMON_LOG_LEVEL": "info"},
			fileContents:        "CONFSYNC_COMMON_LOG_LEVEL=debug\n",
			expectedEnvironment: map[string]string{"CONFSYNC_COMMON_LOG_LEVEL": "info"},
		},
		{
			name:                "comments_and_quotes_parsed",
			existingEnvironment: map[string]string{},
			fileContents:        "# comment line\nCONFSYNC_TOOLS_SETTINGS_BASE=\"settings.base.json\"\n",
			expectedEnvironment: map[string]string{"CONFSYNC_TOOLS_SETTINGS_BASE": "settings.base.json"},
		},
		{
			name:                "empty_file_keeps_existing",
			existingEnvironment: map[string]string{"CONFSYNC_TOOLS_SYNC_PACKAGES": "packages"},
			fileContents:        "",
			expectedEnvironment: map[string]string{"CONFSYNC_TOOLS_SYNC_PACKAGES": "packages"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			mergedEnvironment, loadError := envfile.Load(testCase.existingEnvironment, []byte(testCase.fileContents))
			require.NoError(subtest, loadError)
			require.Equal(subtest, testCase.expectedEnvironment, mergedEnvironment)
		})
	}
}

func TestApply(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	environmentFilePath := filepath.Join(temporaryDirectory, "confsync.env")
	fileContents := "CONFSYNC_APPLY_TEST_NEW=from-file\nCONFSYNC_APPLY_TEST_EXISTING=from-file\n"
	require.NoError(testInstance, os.WriteFile(environmentFilePath, []byte(fileContents), 0o644))

	testInstance.Setenv("CONFSYNC_APPLY_TEST_EXISTING", "from-process")
	require.NoError(testInstance, os.Unsetenv("CONFSYNC_APPLY_TEST_NEW"))

	applyError := envfile.Apply(environmentFilePath)
	require.NoError(testInstance, applyError)
	require.Equal(testInstance, "from-file", os.Getenv("CONFSYNC_APPLY_TEST_NEW"))
	require.Equal(testInstance, "from-process", os.Getenv("CONFSYNC_APPLY_TEST_EXISTING"))

	testInstance.Cleanup(func() {
		_ = os.Unsetenv("CONFSYNC_APPLY_TEST_NEW")
	})
}

func TestApplyMissingFile(testInstance *testing.T) {
	missingPath := filepath.Join(testInstance.TempDir(), "absent.env")
	applyError := envfile.Apply(missingPath)
	require.ErrorIs(testInstance, applyError, shared.ErrMissingResource)
}
