package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

func TestDetectPlatform_ByFilename(t *testing.T) {
	cases := []struct {
		filename string
		want     domain.Platform
	}{
		{"WhatsApp Chat with Alice.txt", domain.PlatformWhatsApp},
		{"tweets.js", domain.PlatformTwitter},
		{"messages.csv", domain.PlatformLinkedInMessages},
		{"Shares.csv", domain.PlatformLinkedInPosts},
		{"result.json", domain.PlatformTelegram},
		{"instagram_export.json", domain.PlatformInstagram},
	}

	for _, tc := range cases {
		got, err := DetectPlatform(tc.filename, "")
		require.NoError(t, err, tc.filename)
		assert.Equal(t, tc.want, got, tc.filename)
	}
}

func TestDetectPlatform_ByContent(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    domain.Platform
	}{
		{"twitter js wrapper", `window.YTD.tweets.part0 = []`, domain.PlatformTwitter},
		{"whatsapp transcript", "1/5/24, 9:12 AM - Alice: hello there friend", domain.PlatformWhatsApp},
		{"instagram inbox", `{"messages": [{"sender_name": "alice", "content": "hi"}]}`, domain.PlatformInstagram},
		{"telegram export", `{"messages": [{"type": "message", "from": "alice", "text": "hi"}]}`, domain.PlatformTelegram},
		{"tweet array", `[{"tweet": {"full_text": "hello"}}]`, domain.PlatformTwitter},
		{"generic json", `{"data": ["a", "b"]}`, domain.PlatformJSON},
		{"csv with text column", "id,text\n1,hello\n", domain.PlatformCSV},
	}

	for _, tc := range cases {
		got, err := DetectPlatform("export.dat", tc.content)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestDetectPlatform_FailsClosed(t *testing.T) {
	_, err := DetectPlatform("notes.txt", "plain prose with no recognizable structure")
	require.ErrorIs(t, err, ErrUnknownPlatform)
}
