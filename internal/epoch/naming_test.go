package epoch_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-epoch/internal/epoch"
)

func TestTagNamerFormatsCalendarDateInLocation(testInstance *testing.T) {
	lateEveningUTC := time.Date(2019, time.December, 31, 23, 30, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		location     *time.Location
		expectedName string
	}{
		{name: "utc", location: time.UTC, expectedName: "git-epoch/2019-12-31"},
		{name: "east_of_utc", location: time.FixedZone("UTC+2", 2*60*60), expectedName: "git-epoch/2020-01-01"},
		{name: "west_of_utc", location: time.FixedZone("UTC-5", -5*60*60), expectedName: "git-epoch/2019-12-31"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			namer := epoch.NewTagNamer(testCase.location)
			require.Equal(testInstance, testCase.expectedName, namer.TagName(lateEveningUTC))
		})
	}
}

func TestTagNamerDefaultsToLocalTime(testInstance *testing.T) {
	timestamp := time.Date(2021, time.June, 15, 12, 0, 0, 0, time.UTC)
	expectedName := "git-epoch/" + timestamp.In(time.Local).Format("2006-01-02")

	require.Equal(testInstance, expectedName, epoch.NewTagNamer(nil).TagName(timestamp))
	require.Equal(testInstance, expectedName, epoch.TagNamer{}.TagName(timestamp))
}

func TestResolveLocation(testInstance *testing.T) {
	testCases := []struct {
		name             string
		timezoneName     string
		expectedLocation string
		expectError      bool
	}{
		{name: "empty", timezoneName: "", expectedLocation: time.Local.String()},
		{name: "local", timezoneName: " Local ", expectedLocation: time.Local.String()},
		{name: "utc", timezoneName: "utc", expectedLocation: "UTC"},
		{name: "unknown", timezoneName: "Mars/Olympus_Mons", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			location, resolutionError := epoch.ResolveLocation(testCase.timezoneName)
			if testCase.expectError {
				require.Error(testInstance, resolutionError)
				require.Nil(testInstance, location)
				return
			}
			require.NoError(testInstance, resolutionError)
			require.Equal(testInstance, testCase.expectedLocation, location.String())
		})
	}
}

func TestIsEpochTag(testInstance *testing.T) {
	require.True(testInstance, epoch.IsEpochTag("git-epoch/2020-01-01"))
	require.True(testInstance, epoch.IsEpochTag("git-epoch-legacy"))
	require.False(testInstance, epoch.IsEpochTag("v1.0.0"))
	require.False(testInstance, epoch.IsEpochTag("release/git-epoch"))
}
