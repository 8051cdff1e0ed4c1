package h3mapper

import "sort"

// Point is anything placed on the map, identified by ID. Cell, when set, is
// a cell at a resolution at least as fine as the cluster resolution and is
// rolled up instead of re-indexing the coordinate.
type Point struct {
	ID   int
	Lat  float64
	Lon  float64
	Cell string
}

// Cluster groups the points that fall into one cell. Lat/Lon is the mean of
// the members.
type Cluster struct {
	Cell    string  `json:"cell"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Count   int     `json:"count"`
	Members []int   `json:"members"`
}

// Cluster buckets points by cell at res. Points that cannot be mapped are
// returned in skipped. Clusters are ordered by size, then cell.
func (m *Mapper) Cluster(points []Point, res int) (clusters []Cluster, skipped []int, err error) {
	if err := validateRes(res); err != nil {
		return nil, nil, err
	}
	byCell := make(map[string]*Cluster)
	for _, p := range points {
		cell, err := m.clusterCell(p, res)
		if err != nil {
			skipped = append(skipped, p.ID)
			continue
		}
		c, ok := byCell[cell]
		if !ok {
			c = &Cluster{Cell: cell}
			byCell[cell] = c
		}
		c.Count++
		c.Lat += p.Lat
		c.Lon += p.Lon
		c.Members = append(c.Members, p.ID)
	}

	clusters = make([]Cluster, 0, len(byCell))
	for _, c := range byCell {
		c.Lat /= float64(c.Count)
		c.Lon /= float64(c.Count)
		clusters = append(clusters, *c)
	}
	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].Count != clusters[j].Count {
			return clusters[i].Count > clusters[j].Count
		}
		return clusters[i].Cell < clusters[j].Cell
	})
	return clusters, skipped, nil
}

func (m *Mapper) clusterCell(p Point, res int) (string, error) {
	if p.Cell == "" {
		return m.CellFor(p.Lat, p.Lon, res)
	}
	return m.ToParent(p.Cell, res)
}
