/*************************************************************************
 * Copyright 2019 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPFetcher hits a JSON rate provider that returns {"base": "EUR",
// "rates": {"USD": 1.08, ...}} and is the production Fetcher wired into
// New. The 10-second FetchTimeout is enforced through Client: the engine
// wires in an http.Client whose Timeout is FetchTimeout. A nil Client falls
// back to http.DefaultClient, which has no timeout of its own.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

func (h HTTPFetcher) Fetch(ctx context.Context) (map[string]float64, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned %s", resp.Status)
	}
	var rec diskRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, err
	}
	if len(rec.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}
	return rec.Rates, nil
}
