package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/painpoint-cli/internal/catalog"
	"github.com/sells-group/painpoint-cli/internal/model"
)

// ProspectColumns is the header of the discovery export.
var ProspectColumns = []string{
	"company_name",
	"relevance_score",
	"source_url",
	"pain_point",
	"pain_point_description",
	"recommended_services",
	"discovery_query",
}

// WriteProspectsCSV writes one row per prospect per identified pain point.
func WriteProspectsCSV(w io.Writer, prospects []model.Prospect, cat *catalog.Catalog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ProspectColumns); err != nil {
		return eris.Wrap(err, "report: write prospects header")
	}
	for _, p := range prospects {
		for _, id := range p.PainPointIDs {
			pp, _ := cat.PainPoint(id)
			err := cw.Write([]string{
				p.CompanyName,
				strconv.Itoa(p.RelevanceScore),
				p.SourceURL,
				id,
				pp.Description,
				strings.Join(pp.RecommendedServices, ", "),
				p.DiscoveryQuery,
			})
			if err != nil {
				return eris.Wrap(err, "report: write prospect row")
			}
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush prospects")
}

// ProspectsFilename returns the discovery export filename for a date stamp
// formatted as YYYYMMDD.
func ProspectsFilename(stamp string) string {
	return "potential_clients_" + stamp + ".csv"
}
