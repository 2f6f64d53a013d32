package sonarr

import "time"

// Series represents a TV series in Sonarr.
type Series struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	TitleSlug  string    `json:"titleSlug"`
	SortTitle  string    `json:"sortTitle"`
	Path       string    `json:"path"`
	Year       int       `json:"year"`
	TvdbID     int       `json:"tvdbId"`
	ImdbID     string    `json:"imdbId"`
	Overview   string    `json:"overview"`
	Status     string    `json:"status"`
	Network    string    `json:"network"`
	Runtime    int       `json:"runtime"`
	Monitored  bool      `json:"monitored"`
	Tags       []int     `json:"tags"`
	Added      time.Time `json:"added"`
	FirstAired string    `json:"firstAired"`
}

// Episode represents a TV episode.
type Episode struct {
	ID            int        `json:"id"`
	SeriesID      int        `json:"seriesId"`
	SeasonNumber  int        `json:"seasonNumber"`
	EpisodeNumber int        `json:"episodeNumber"`
	Title         string     `json:"title"`
	Overview      string     `json:"overview"`
	AirDate       string     `json:"airDate"`
	AirDateUtc    *time.Time `json:"airDateUtc"`
	HasFile       bool       `json:"hasFile"`
	Monitored     bool       `json:"monitored"`
	Runtime       int        `json:"runtime"`
}

// Tag is a Sonarr tag definition.
type Tag struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Command represents a Sonarr command request.
type Command struct {
	Name     string `json:"name"`
	SeriesID int    `json:"seriesId,omitempty"`
}

// CommandResponse is returned after executing a command.
type CommandResponse struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	CommandName string     `json:"commandName"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	Queued      time.Time  `json:"queued"`
	Started     *time.Time `json:"started"`
	Ended       *time.Time `json:"ended"`
}

// SystemStatus represents Sonarr system status.
type SystemStatus struct {
	AppName      string `json:"appName"`
	InstanceName string `json:"instanceName"`
	Version      string `json:"version"`
	Branch       string `json:"branch"`
	OsName       string `json:"osName"`
	IsDocker     bool   `json:"isDocker"`
	UrlBase      string `json:"urlBase"`
	StartTime    string `json:"startTime"`
}
