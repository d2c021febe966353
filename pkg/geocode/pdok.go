package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/geo"
	"github.com/sells-group/locintel/internal/model"
	"github.com/sells-group/locintel/internal/retry"
)

// pdokResponse is the Solr-style envelope the Locatieserver returns.
type pdokResponse struct {
	Response struct {
		NumFound int       `json:"numFound"`
		Docs     []pdokDoc `json:"docs"`
	} `json:"response"`
}

type pdokDoc struct {
	Type         string `json:"type"`
	Weergavenaam string `json:"weergavenaam"`
	CentroideLL  string `json:"centroide_ll"`
	CentroideRD  string `json:"centroide_rd"`
	Gemeentecode string `json:"gemeentecode"`
	Gemeentenaam string `json:"gemeentenaam"`
	Wijkcode     string `json:"wijkcode"`
	Wijknaam     string `json:"wijknaam"`
	Buurtcode    string `json:"buurtcode"`
	Buurtnaam    string `json:"buurtnaam"`
}

// Geocode implements Client using the Locatieserver free-text endpoint.
func (c *client) Geocode(ctx context.Context, address string) (*model.LocationData, error) {
	if strings.TrimSpace(address) == "" {
		return nil, eris.New("geocode: empty address")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"q":    {address},
		"fq":   {"type:adres"},
		"rows": {"1"},
		"fl": {"type,weergavenaam,centroide_ll,centroide_rd," +
			"gemeentecode,gemeentenaam,wijkcode,wijknaam,buurtcode,buurtnaam"},
	}

	reqURL := c.baseURL + "/free?" + params.Encode()
	body, err := retry.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, reqURL)
	})
	if err != nil {
		return nil, err
	}

	var pr pdokResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}

	if pr.Response.NumFound == 0 || len(pr.Response.Docs) == 0 {
		return nil, eris.Errorf("geocode: no match for %q", address)
	}

	doc := pr.Response.Docs[0]
	loc, err := docToLocation(doc)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("geocode: resolved address",
		zap.String("address", address),
		zap.String("matched", doc.Weergavenaam),
		zap.String("municipality", loc.Municipality.Code),
	)
	return loc, nil
}

// fetch performs one GET against the Locatieserver, marking timeouts
// and 5xx/429 responses as retryable.
func (c *client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("geocode: locatieserver returned status %d", resp.StatusCode)
		if retry.IsTransientStatus(resp.StatusCode) {
			return nil, retry.Transient(statusErr, resp.StatusCode)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}
	return body, nil
}

func docToLocation(doc pdokDoc) (*model.LocationData, error) {
	lon, lat, err := parsePoint(doc.CentroideLL)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: parse centroide_ll")
	}

	loc := &model.LocationData{
		Address:   doc.Weergavenaam,
		Latitude:  lat,
		Longitude: lon,
		Municipality: model.Area{
			Code: doc.Gemeentecode,
			Name: doc.Gemeentenaam,
		},
	}

	if doc.CentroideRD != "" {
		x, y, err := parsePoint(doc.CentroideRD)
		if err != nil {
			return nil, eris.Wrap(err, "geocode: parse centroide_rd")
		}
		loc.RDX, loc.RDY = x, y
	} else {
		pt := geo.FromWGS84(lat, lon)
		loc.RDX, loc.RDY = pt.X(), pt.Y()
	}

	if doc.Wijkcode != "" {
		loc.District = &model.Area{Code: doc.Wijkcode, Name: doc.Wijknaam}
	}
	if doc.Buurtcode != "" {
		loc.Neighborhood = &model.Area{Code: doc.Buurtcode, Name: doc.Buurtnaam}
	}
	return loc, nil
}

// parsePoint reads a WKT "POINT(x y)" literal.
func parsePoint(wkt string) (x, y float64, err error) {
	s := strings.TrimSpace(wkt)
	if !strings.HasPrefix(s, "POINT(") || !strings.HasSuffix(s, ")") {
		return 0, 0, eris.Errorf("geocode: malformed point %q", wkt)
	}
	fields := strings.Fields(s[len("POINT(") : len(s)-1])
	if len(fields) != 2 {
		return 0, 0, eris.Errorf("geocode: malformed point %q", wkt)
	}
	x, err = strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, eris.Wrap(err, "geocode: parse x")
	}
	y, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, eris.Wrap(err, "geocode: parse y")
	}
	return x, y, nil
}
