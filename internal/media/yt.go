package media

import "net/url"

func checkId(s string) bool {
	for _, r := range s {
		suitable := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
		if !suitable {
			return false
		}
	}

	return true
}

func CheckVideoId(id string) bool {
	return len(id) == 11 && checkId(id)
}

func CheckPlaylistId(id string) bool {
	return id != "" && checkId(id)
}

func videoURL(id string) *url.URL {
	u, err := url.Parse("https://youtu.be/" + id)
	if err != nil {
		panic("unexpected URL parse error")
	}

	return u
}

func playlistURL(id string) *url.URL {
	u, err := url.Parse("https://youtube.com/playlist?list=" + id)
	if err != nil {
		panic("unexpected URL parse error")
	}

	return u
}
