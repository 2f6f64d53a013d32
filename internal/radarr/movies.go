package radarr

import (
	"fmt"
	"strings"
)

func (c *Client) GetAllMovies() ([]Movie, error) {
	var movies []Movie
	if err := c.get("/api/v3/movie", &movies); err != nil {
		return nil, fmt.Errorf("getting movies: %w", err)
	}
	return movies, nil
}

func (c *Client) GetMovie(id int) (*Movie, error) {
	endpoint := fmt.Sprintf("/api/v3/movie/%d", id)
	var movie Movie
	if err := c.get(endpoint, &movie); err != nil {
		return nil, fmt.Errorf("getting movie %d: %w", id, err)
	}
	return &movie, nil
}

func (c *Client) GetTags() ([]Tag, error) {
	var tags []Tag
	if err := c.get("/api/v3/tag", &tags); err != nil {
		return nil, fmt.Errorf("getting tags: %w", err)
	}
	return tags, nil
}

// GetTaggedMovies returns monitored, downloaded movies carrying the
// given tag label. Movies without a file yet are skipped: extras only
// make sense next to the main feature. An unknown label returns an
// empty slice.
func (c *Client) GetTaggedMovies(label string) ([]Movie, error) {
	tags, err := c.GetTags()
	if err != nil {
		return nil, err
	}

	tagID := -1
	for _, t := range tags {
		if strings.EqualFold(t.Label, label) {
			tagID = t.ID
			break
		}
	}
	if tagID == -1 {
		return nil, nil
	}

	allMovies, err := c.GetAllMovies()
	if err != nil {
		return nil, err
	}

	var matches []Movie
	for _, m := range allMovies {
		if !m.Monitored || !m.HasFile {
			continue
		}
		for _, id := range m.Tags {
			if id == tagID {
				matches = append(matches, m)
				break
			}
		}
	}
	return matches, nil
}

// RescanMovie asks Radarr to rescan a movie folder on disk.
func (c *Client) RescanMovie(movieID int) (*CommandResponse, error) {
	cmd := Command{
		Name:     "RescanMovie",
		MovieIDs: []int{movieID},
	}

	var resp CommandResponse
	if err := c.post("/api/v3/command", cmd, &resp); err != nil {
		return nil, fmt.Errorf("rescanning movie %d: %w", movieID, err)
	}
	return &resp, nil
}
