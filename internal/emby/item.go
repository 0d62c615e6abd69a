package emby

// Item is the subset of an Emby BaseItemDto the scraper reads.
type Item struct {
	ID             string            `json:"Id"`
	Name           string            `json:"Name"`
	ProductionYear int               `json:"ProductionYear"`
	OriginalTitle  string            `json:"OriginalTitle"`
	ProviderIDs    map[string]string `json:"ProviderIds"`
	Genres         []string          `json:"Genres"`
	Studios        []NameRef         `json:"Studios"`
	ImageTags      map[string]string `json:"ImageTags"`
	MediaSources   []MediaSource     `json:"MediaSources"`
	CriticRating   *float64          `json:"CriticRating"`
	DateCreated    string            `json:"DateCreated"`
}

// NameRef is an Emby name/id pair such as a studio. Only the name is read;
// servers send the id as a number.
type NameRef struct {
	Name string `json:"Name"`
}

// MediaSource describes one playable version of an item.
type MediaSource struct {
	MediaStreams []MediaStream `json:"MediaStreams"`
}

// MediaStream is one audio, video, or subtitle stream.
type MediaStream struct {
	Type         string `json:"Type"`
	DisplayTitle string `json:"DisplayTitle"`
}

// ExternalID returns the IMDb identifier used to query enrichment sources.
func (i Item) ExternalID() string {
	return i.ProviderIDs[providerIMDB]
}

// PrimaryImageTag returns the content tag of the primary image.
func (i Item) PrimaryImageTag() string {
	return i.ImageTags[imagePrimary]
}

// videoStream returns the first video stream of the first media source.
func (i Item) videoStream() (MediaStream, bool) {
	if len(i.MediaSources) == 0 {
		return MediaStream{}, false
	}
	for _, stream := range i.MediaSources[0].MediaStreams {
		if stream.Type == streamVideo {
			return stream, true
		}
	}
	return MediaStream{}, false
}

const (
	providerIMDB = "IMDB"
	imagePrimary = "Primary"
	streamVideo  = "Video"
)
