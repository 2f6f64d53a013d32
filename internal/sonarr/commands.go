package sonarr

import "fmt"

// RescanSeries asks Sonarr to rescan a series folder on disk so freshly
// downloaded specials get picked up.
func (c *Client) RescanSeries(seriesID int) (*CommandResponse, error) {
	cmd := Command{
		Name:     "RescanSeries",
		SeriesID: seriesID,
	}

	var resp CommandResponse
	if err := c.post("/api/v3/command", cmd, &resp); err != nil {
		return nil, fmt.Errorf("rescanning series %d: %w", seriesID, err)
	}
	return &resp, nil
}
