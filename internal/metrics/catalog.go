package metrics

import (
	"time"

	"fleetmap.opentransit.org/internal/cluster"
)

// ReportCatalog publishes the shape of a freshly built catalog: record
// counts by kind, the total marker count, how many markers were skipped
// for invalid coordinates, and how long the clustering pass took.
func ReportCatalog(c cluster.Catalog, buildTime time.Duration) {
	clusters := 0
	singletons := 0
	for _, r := range c.Records {
		if r.IsCluster {
			clusters++
		} else {
			singletons++
		}
	}

	CatalogRecords.Set(float64(len(c.Records)))
	CatalogClusters.Set(float64(clusters))
	CatalogSingletons.Set(float64(singletons))
	CatalogMarkersClustered.Set(float64(c.TotalCount()))
	CatalogMarkersSkipped.Set(float64(c.Skipped))
	CatalogBuildDuration.Observe(buildTime.Seconds())
}
