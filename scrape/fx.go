package scrape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

// Intraday GBP/USD rate, used only to print USD equivalents next to account
// values. The valuation cascade itself never converts currencies.

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// latestRateURL serves an intraday mini chart for the GBP/USD pair; the
// last data point is the current rate.
var latestRateURL = "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=349940&series=intraday&type=mini"

// LatestUSDPerGBP returns the current number of dollars per pound.
func LatestUSDPerGBP(client *http.Client) (float64, error) {
	var jobj any
	if err := jwget(client, latestRateURL, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", "GBP/USD", err)
	}

	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", "GBP/USD", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer, keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q not a float: %v", "GBP/USD", path, jval)
	}
	if val <= 0 {
		return math.NaN(), fmt.Errorf("empty GBP/USD rate: %v", val)
	}
	return val, nil
}
