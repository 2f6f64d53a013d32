package sonarr

import (
	"fmt"
	"strings"
)

func (c *Client) GetAllSeries() ([]Series, error) {
	var series []Series
	if err := c.get("/api/v3/series", &series); err != nil {
		return nil, fmt.Errorf("getting series: %w", err)
	}
	return series, nil
}

func (c *Client) GetSeries(id int) (*Series, error) {
	endpoint := fmt.Sprintf("/api/v3/series/%d", id)
	var series Series
	if err := c.get(endpoint, &series); err != nil {
		return nil, fmt.Errorf("getting series %d: %w", id, err)
	}
	return &series, nil
}

func (c *Client) GetTags() ([]Tag, error) {
	var tags []Tag
	if err := c.get("/api/v3/tag", &tags); err != nil {
		return nil, fmt.Errorf("getting tags: %w", err)
	}
	return tags, nil
}

// GetTaggedSeries returns the monitored series carrying the given tag
// label. An unknown label returns an empty slice, not an error, so a
// fresh install without the tag behaves as "nothing to do".
func (c *Client) GetTaggedSeries(label string) ([]Series, error) {
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

	allSeries, err := c.GetAllSeries()
	if err != nil {
		return nil, err
	}

	var matches []Series
	for _, s := range allSeries {
		if !s.Monitored {
			continue
		}
		for _, id := range s.Tags {
			if id == tagID {
				matches = append(matches, s)
				break
			}
		}
	}
	return matches, nil
}

func (c *Client) GetEpisodes(seriesID int) ([]Episode, error) {
	endpoint := fmt.Sprintf("/api/v3/episode?seriesId=%d", seriesID)
	var episodes []Episode
	if err := c.get(endpoint, &episodes); err != nil {
		return nil, fmt.Errorf("getting episodes for series %d: %w", seriesID, err)
	}
	return episodes, nil
}

// GetMissingSpecials returns monitored season-0 episodes that have no
// file yet. These are the specials extrarr tries to source from
// YouTube.
func (c *Client) GetMissingSpecials(seriesID int) ([]Episode, error) {
	episodes, err := c.GetEpisodes(seriesID)
	if err != nil {
		return nil, err
	}

	var specials []Episode
	for _, ep := range episodes {
		if ep.SeasonNumber == 0 && ep.Monitored && !ep.HasFile {
			specials = append(specials, ep)
		}
	}
	return specials, nil
}
