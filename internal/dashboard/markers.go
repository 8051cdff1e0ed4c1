package dashboard

import (
	"fmt"
	"html"

	"github.com/mohammed-shakir/pt-dashboard/internal/coord"
	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
	h3mapper "github.com/mohammed-shakir/pt-dashboard/internal/mapper/h3"
)

// Initial map position: centre of Indonesia.
const (
	MapCenterLat = -2.548926
	MapCenterLon = 118.0148634
	MapZoom      = 5
)

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker is one filtered institution on the map. Fallback markers sit at
// (0, 0) like any other marker; the flag only makes them identifiable.
type Marker struct {
	No       int     `json:"no"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Fallback bool    `json:"is_fallback"`
	Cell     string  `json:"cell,omitempty"`
	Popup    string  `json:"popup"`
	Tooltip  string  `json:"tooltip"`
}

type MapView struct {
	Center     LatLon             `json:"center"`
	Zoom       int                `json:"zoom"`
	H3Res      int                `json:"h3_res"`
	ClusterRes int                `json:"cluster_res"`
	Markers    []Marker           `json:"markers"`
	Clusters   []h3mapper.Cluster `json:"clusters"`
	Fallbacks  int                `json:"fallbacks"`
}

func (b *Builder) mapView(rows []model.Row) MapView {
	mv := MapView{
		Center:     LatLon{Lat: MapCenterLat, Lon: MapCenterLon},
		Zoom:       MapZoom,
		H3Res:      b.opts.H3Res,
		ClusterRes: b.opts.ClusterRes,
		Markers:    make([]Marker, 0, len(rows)),
		Clusters:   []h3mapper.Cluster{},
	}
	pts := make([]h3mapper.Point, 0, len(rows))
	for _, r := range rows {
		res := coord.Parse(r.Coordinates)
		if res.Fallback {
			mv.Fallbacks++
		}
		lat, lon := res.Pair()
		m := Marker{
			No:       r.No,
			Name:     r.Name,
			Lat:      lat,
			Lon:      lon,
			Fallback: res.Fallback,
			Popup:    popup(r.Record),
			Tooltip:  r.Name,
		}
		// out-of-range text parses fine but has no cell; the marker is kept
		if cell, err := b.opts.Mapper.CellFor(lat, lon, b.opts.H3Res); err == nil {
			m.Cell = cell
		}
		mv.Markers = append(mv.Markers, m)
		pts = append(pts, h3mapper.Point{ID: r.No, Lat: lat, Lon: lon, Cell: m.Cell})
	}
	if clusters, _, err := b.opts.Mapper.Cluster(pts, b.opts.ClusterRes); err == nil {
		mv.Clusters = clusters
	}
	return mv
}

func popup(r model.Record) string {
	return fmt.Sprintf("%s<br>Alamat: %s<br>Bentuk: %s<br>Rasio Mahasiswa/Dosen: %s",
		html.EscapeString(r.Name),
		html.EscapeString(r.Address),
		html.EscapeString(r.Form),
		html.EscapeString(r.FormatRatio()))
}
