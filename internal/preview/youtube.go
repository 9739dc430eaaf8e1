package preview

import "regexp"

var youtubeIdRe = regexp.MustCompile(`(?:youtube\.com/.*v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// YouTubeThumbnail derives a thumbnail URL from the video id embedded in a
// link, with no network call. The second return value reports whether the
// link matched the video-hosting pattern. When it does, the thumbnail takes
// precedence over anything the resolver would find.
func YouTubeThumbnail(link string) (string, bool) {
	match := youtubeIdRe.FindStringSubmatch(link)
	if match == nil {
		return "", false
	}
	return "https://img.youtube.com/vi/" + match[1] + "/hqdefault.jpg", true
}
