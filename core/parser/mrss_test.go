// ABOUTME: Tests for the MediaRSS sub-parser and its inheritance merge
// ABOUTME: Exercises group inheritance, scalar overrides and list accumulation

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aggregator-core/core/domain"
	"aggregator-core/core/identity"
)

func parseItemMRSS(t *testing.T, inner string) []domain.MRSSEntry {
	t.Helper()
	return parseMRSS(itemNode(t, inner), identity.NewAllocator(), nopLogger{})
}

func TestMRSSEntryAttributes(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content url="http://example.com/v.mp4" fileSize="2048" type="video/mp4"
			medium="video" isDefault="true" expression="sample" bitrate="128"
			framerate="25.0" samplingrate="44.1" channels="2" duration="120"
			width="640" height="480" lang="en"/>`)
	require.Len(t, entries, 1)

	en := entries[0]
	assert.Equal(t, "http://example.com/v.mp4", en.URL)
	assert.Equal(t, int64(2048), en.Size)
	assert.Equal(t, "video/mp4", en.Type)
	assert.Equal(t, "video", en.Medium)
	assert.True(t, en.IsDefault)
	assert.Equal(t, "sample", en.Expression)
	assert.Equal(t, 128, en.Bitrate)
	assert.InDelta(t, 25.0, en.Framerate, 1e-9)
	assert.InDelta(t, 44.1, en.SamplingRate, 1e-9)
	assert.Equal(t, 2, en.Channels)
	assert.Equal(t, 120, en.Duration)
	assert.Equal(t, 640, en.Width)
	assert.Equal(t, 480, en.Height)
	assert.Equal(t, "en", en.Lang)
	assert.NotEqual(t, domain.IDNotFound, en.EntryID)
}

func TestMRSSExpressionDefaultsToFull(t *testing.T) {
	entries := parseItemMRSS(t, `<media:content url="http://example.com/v.mp4"/>`)
	require.Len(t, entries, 1)
	assert.Equal(t, "full", entries[0].Expression)
}

func TestMRSSURLFallsBackToPlayer(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content type="video/mp4">
			<media:player url="http://example.com/player?v=1"/>
		</media:content>`)
	require.Len(t, entries, 1)
	assert.Equal(t, "http://example.com/player?v=1", entries[0].URL)
}

func TestMRSSGroupEntriesInheritGroupMetadata(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:group>
			<media:rating>nonadult</media:rating>
			<media:title>Shared title</media:title>
			<media:content url="http://example.com/lo.mp4" bitrate="64"/>
			<media:content url="http://example.com/hi.mp4" bitrate="256"/>
		</media:group>`)
	require.Len(t, entries, 2)
	for _, en := range entries {
		assert.Equal(t, "nonadult", en.Rating)
		assert.Equal(t, "urn:simple", en.RatingScheme)
		assert.Equal(t, "Shared title", en.Title)
	}
	assert.NotEqual(t, entries[0].EntryID, entries[1].EntryID)
}

func TestMRSSDeeperScalarWins(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:group>
			<media:title>Group title</media:title>
			<media:content url="http://example.com/a.mp4">
				<media:title>Own title</media:title>
			</media:content>
			<media:content url="http://example.com/b.mp4"/>
		</media:group>`)
	require.Len(t, entries, 2)
	assert.Equal(t, "Own title", entries[0].Title)
	assert.Equal(t, "Group title", entries[1].Title)
}

func TestMRSSExplicitRatingSchemeIsKept(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content url="http://example.com/a.mp4">
			<media:rating scheme="urn:mpaa">pg</media:rating>
		</media:content>`)
	require.Len(t, entries, 1)
	assert.Equal(t, "pg", entries[0].Rating)
	assert.Equal(t, "urn:mpaa", entries[0].RatingScheme)
}

func TestMRSSThumbnailsAccumulateAcrossLevels(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:group>
			<media:thumbnail url="http://example.com/group.jpg" width="100" height="75"/>
			<media:content url="http://example.com/a.mp4">
				<media:thumbnail url="http://example.com/own.jpg" time="00:00:05"/>
			</media:content>
		</media:group>`)
	require.Len(t, entries, 1)

	thumbs := entries[0].Thumbnails
	require.Len(t, thumbs, 2)
	assert.Equal(t, "http://example.com/group.jpg", thumbs[0].URL)
	assert.Equal(t, 100, thumbs[0].Width)
	assert.Equal(t, "http://example.com/own.jpg", thumbs[1].URL)
	assert.Equal(t, "00:00:05", thumbs[1].Time)

	for _, th := range thumbs {
		assert.Equal(t, entries[0].EntryID, th.EntryID)
		assert.NotEqual(t, domain.IDNotFound, th.ThumbnailID)
	}
	assert.NotEqual(t, thumbs[0].ThumbnailID, thumbs[1].ThumbnailID)
}

func TestMRSSSharedSubRecordsGetPerEntryIdentity(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:group>
			<media:thumbnail url="http://example.com/shared.jpg"/>
			<media:content url="http://example.com/a.mp4"/>
			<media:content url="http://example.com/b.mp4"/>
		</media:group>`)
	require.Len(t, entries, 2)
	require.Len(t, entries[0].Thumbnails, 1)
	require.Len(t, entries[1].Thumbnails, 1)

	// The same group thumbnail materializes per entry with its own
	// identity and back-reference.
	assert.Equal(t, entries[0].EntryID, entries[0].Thumbnails[0].EntryID)
	assert.Equal(t, entries[1].EntryID, entries[1].Thumbnails[0].EntryID)
	assert.NotEqual(t, entries[0].Thumbnails[0].ThumbnailID, entries[1].Thumbnails[0].ThumbnailID)
}

func TestMRSSCreditWithoutRoleIsSkipped(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content url="http://example.com/a.mp4">
			<media:credit role="producer">Alice</media:credit>
			<media:credit>Bob</media:credit>
		</media:content>`)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Credits, 1)
	assert.Equal(t, "producer", entries[0].Credits[0].Role)
	assert.Equal(t, "Alice", entries[0].Credits[0].Who)
}

func TestMRSSCommunityAndComments(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content url="http://example.com/a.mp4">
			<media:community>
				<media:starRating average="4" count="20" min="1" max="5"/>
				<media:statistics views="1000" favorites="30"/>
				<media:tags>news: 5, weather: 2</media:tags>
			</media:community>
			<media:comments>
				<media:comment>first!</media:comment>
				<media:comment>nice</media:comment>
			</media:comments>
			<media:responses>
				<media:response>http://example.com/response</media:response>
			</media:responses>
			<media:backLinks>
				<media:backLink>http://example.com/back</media:backLink>
			</media:backLinks>
		</media:content>`)
	require.Len(t, entries, 1)

	en := entries[0]
	assert.Equal(t, 4, en.RatingAverage)
	assert.Equal(t, 20, en.RatingCount)
	assert.Equal(t, 1, en.RatingMin)
	assert.Equal(t, 5, en.RatingMax)
	assert.Equal(t, 1000, en.Views)
	assert.Equal(t, 30, en.Favs)
	assert.Equal(t, "news: 5, weather: 2", en.Tags)

	require.Len(t, en.Comments, 4)
	assert.Equal(t, domain.MRSSComment{
		CommentID: en.Comments[0].CommentID,
		EntryID:   en.EntryID,
		Type:      "Comments",
		Comment:   "first!",
	}, en.Comments[0])
	assert.Equal(t, "Responses", en.Comments[2].Type)
	assert.Equal(t, "Backlinks", en.Comments[3].Type)
}

func TestMRSSPeerLinksAndScenes(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content url="http://example.com/a.mp4">
			<media:peerLink type="application/x-bittorrent" href="http://example.com/a.torrent"/>
			<media:scenes>
				<media:scene>
					<sceneTitle>Intro</sceneTitle>
					<sceneDescription>Opening titles</sceneDescription>
					<sceneStartTime>00:00</sceneStartTime>
					<sceneEndTime>00:30</sceneEndTime>
				</media:scene>
			</media:scenes>
		</media:content>`)
	require.Len(t, entries, 1)

	require.Len(t, entries[0].PeerLinks, 1)
	assert.Equal(t, "http://example.com/a.torrent", entries[0].PeerLinks[0].Link)
	assert.Equal(t, "application/x-bittorrent", entries[0].PeerLinks[0].Type)

	require.Len(t, entries[0].Scenes, 1)
	scene := entries[0].Scenes[0]
	assert.Equal(t, "Intro", scene.Title)
	assert.Equal(t, "Opening titles", scene.Description)
	assert.Equal(t, "00:00", scene.StartTime)
	assert.Equal(t, "00:30", scene.EndTime)
}

func TestMRSSGroupEntriesComeBeforeDirectEntries(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content url="http://example.com/direct.mp4"/>
		<media:group>
			<media:content url="http://example.com/grouped.mp4"/>
		</media:group>`)
	require.Len(t, entries, 2)
	assert.Equal(t, "http://example.com/grouped.mp4", entries[0].URL)
	assert.Equal(t, "http://example.com/direct.mp4", entries[1].URL)
}

func TestMRSSTitleEntitiesUnescaped(t *testing.T) {
	entries := parseItemMRSS(t, `
		<media:content url="http://example.com/a.mp4">
			<media:title>Tom &amp;amp; Jerry</media:title>
		</media:content>`)
	require.Len(t, entries, 1)
	assert.Equal(t, "Tom & Jerry", entries[0].Title)
}

func TestMRSSNoMediaElementsYieldsNoEntries(t *testing.T) {
	assert.Empty(t, parseItemMRSS(t, `<title>plain item</title>`))
}
