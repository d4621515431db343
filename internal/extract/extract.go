package extract

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrMalformedLink is returned when a link does not have the expected
// https://<host>/@<author>/.../<post-id> path structure.
// Callers should treat this as a per-record failure, not a fatal error.
var ErrMalformedLink = errors.New("malformed video link: expected https://<host>/@<author>/.../<post-id>")

// ProfileURLTemplate is the canonical TikTok profile URL prefix used to
// synthesize the link_to_author field from an extracted author handle.
const ProfileURLTemplate = "https://www.tiktok.com/@%s"

// Engagement count patterns.
// A count is digits, optionally with thousands separators or a decimal
// point, and an optional K/M magnitude suffix, immediately followed by the
// literal word "Likes" or "Comments" (case-insensitive). The matched count
// substring is kept verbatim; it is never parsed into a numeric type because
// the magnitude suffix carries meaning downstream.
var (
	likesPattern    = regexp.MustCompile(`(?i)(\d+(?:[\d,.]*\d+)?[KM]?) Likes`)
	commentsPattern = regexp.MustCompile(`(?i)(\d+(?:[\d,.]*\d+)?[KM]?) Comments`)
)

// LikesComments extracts like and comment counts from a free-text snippet.
// The two patterns are searched independently; a text may yield one, both,
// or neither. Absent matches are returned as invalid (NULL) strings.
//
// The text is NFC-normalized before matching because scraped snippets often
// arrive with decomposed code points that would split a digit run.
func LikesComments(text string) (likes, comments sql.NullString) {
	text = norm.NFC.String(text)

	if m := likesPattern.FindStringSubmatch(text); m != nil {
		likes = sql.NullString{String: m[1], Valid: true}
	}
	if m := commentsPattern.FindStringSubmatch(text); m != nil {
		comments = sql.NullString{String: m[1], Valid: true}
	}
	return likes, comments
}

// AuthorFields holds the fields derived from a video link.
type AuthorFields struct {
	// Author is the author handle with the leading "@" stripped.
	Author string

	// LinkToAuthor is the canonical profile URL for the author.
	LinkToAuthor string

	// PostID is the final path segment of the video link.
	PostID string
}

// AuthorPostID derives the author handle, canonical profile link, and post
// identifier from a video link of the form
// https://<host>/@<author>/.../<post-id>.
//
// The 4th "/"-delimited segment (after scheme, the empty segment, and host)
// is the author; the final segment is the post id. Links that do not carry
// at least four segments, or whose author segment is empty, fail with
// ErrMalformedLink rather than producing empty derived fields.
func AuthorPostID(link string) (AuthorFields, error) {
	parts := strings.Split(link, "/")
	if len(parts) < 4 || parts[3] == "" {
		return AuthorFields{}, fmt.Errorf("%w: %q", ErrMalformedLink, link)
	}

	author := strings.ReplaceAll(parts[3], "@", "")
	return AuthorFields{
		Author:       author,
		LinkToAuthor: fmt.Sprintf(ProfileURLTemplate, author),
		PostID:       parts[len(parts)-1],
	}, nil
}
