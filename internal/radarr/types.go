package radarr

import "time"

// Movie represents a movie in Radarr.
type Movie struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	TitleSlug       string    `json:"titleSlug"`
	SortTitle       string    `json:"sortTitle"`
	Path            string    `json:"path"`
	Year            int       `json:"year"`
	TmdbID          int       `json:"tmdbId"`
	ImdbID          string    `json:"imdbId"`
	Overview        string    `json:"overview"`
	Status          string    `json:"status"`
	Studio          string    `json:"studio"`
	Runtime         int       `json:"runtime"`
	Monitored       bool      `json:"monitored"`
	HasFile         bool      `json:"hasFile"`
	Tags            []int     `json:"tags"`
	Added           time.Time `json:"added"`
	InCinemas       string    `json:"inCinemas"`
	PhysicalRelease string    `json:"physicalRelease"`
	DigitalRelease  string    `json:"digitalRelease"`
}

// Tag is a Radarr tag definition.
type Tag struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Command represents a Radarr command request.
type Command struct {
	Name     string `json:"name"`
	MovieIDs []int  `json:"movieIds,omitempty"`
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

// SystemStatus represents Radarr system status.
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
