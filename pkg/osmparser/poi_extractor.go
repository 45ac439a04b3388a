package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lintang-b-s/campusnav/pkg/dataset"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// TagFilter. osm tag key -> accepted values. an empty value set accepts any value of the key.
type TagFilter map[string]map[string]struct{}

func DefaultTagFilter() TagFilter {
	return TagFilter{
		"amenity":  {},
		"leisure":  {},
		"building": {},
		"sport":    {},
		"shop":     {},
	}
}

func (tf TagFilter) accept(tags osm.Tags) bool {
	for _, tag := range tags {
		values, ok := tf[tag.Key]
		if !ok {
			continue
		}
		if len(values) == 0 {
			return true
		}
		if _, ok := values[tag.Value]; ok {
			return true
		}
	}
	return false
}

type POIExtractor struct {
	filter  TagFilter
	logger  *zap.Logger
	workers int
}

func NewPOIExtractor(filter TagFilter, workers int, logger *zap.Logger) *POIExtractor {
	if filter == nil {
		filter = DefaultTagFilter()
	}
	if workers < 1 {
		workers = 1
	}
	return &POIExtractor{filter: filter, logger: logger, workers: workers}
}

// poiCollector. keeps named, accepted nodes directly and named, accepted ways until their node coordinates are known.
type poiCollector struct {
	filter TagFilter

	locations map[string]geo.Coordinate
	// way name -> node ids, resolved to a centroid after the second pass
	ways      map[string][]osm.NodeID
	wayOrder  []string
	wanted    map[osm.NodeID]struct{}
	wayNodes  map[osm.NodeID]geo.Coordinate
	duplicate int
}

func newPOICollector(filter TagFilter) *poiCollector {
	return &poiCollector{
		filter:    filter,
		locations: make(map[string]geo.Coordinate),
		ways:      make(map[string][]osm.NodeID),
		wanted:    make(map[osm.NodeID]struct{}),
		wayNodes:  make(map[osm.NodeID]geo.Coordinate),
	}
}

func (c *poiCollector) taken(name string) bool {
	_, isNode := c.locations[name]
	_, isWay := c.ways[name]
	return isNode || isWay
}

// addObject. first pass.
func (c *poiCollector) addObject(o osm.Object) {
	switch obj := o.(type) {
	case *osm.Node:
		name := obj.Tags.Find("name")
		if name == "" || !c.filter.accept(obj.Tags) {
			return
		}
		if c.taken(name) {
			c.duplicate++
			return
		}
		c.locations[name] = geo.NewCoordinate(obj.Lat, obj.Lon)
	case *osm.Way:
		name := obj.Tags.Find("name")
		if name == "" || len(obj.Nodes) == 0 || !c.filter.accept(obj.Tags) {
			return
		}
		if c.taken(name) {
			c.duplicate++
			return
		}
		ids := obj.Nodes.NodeIDs()
		c.ways[name] = ids
		c.wayOrder = append(c.wayOrder, name)
		for _, id := range ids {
			c.wanted[id] = struct{}{}
		}
	}
}

// addWayNode. second pass, coordinates of the nodes referenced by collected ways.
func (c *poiCollector) addWayNode(o osm.Object) {
	node, ok := o.(*osm.Node)
	if !ok {
		return
	}
	if _, ok := c.wanted[node.ID]; ok {
		c.wayNodes[node.ID] = geo.NewCoordinate(node.Lat, node.Lon)
	}
}

func (c *poiCollector) needsSecondPass() bool {
	return len(c.ways) > 0
}

// result. every collected poi sorted by name, ways placed at the centroid of their resolved nodes.
func (c *poiCollector) result(name string) *dataset.Dataset {
	for _, wayName := range c.wayOrder {
		sumLat, sumLon, n := 0.0, 0.0, 0
		for _, id := range c.ways[wayName] {
			coord, ok := c.wayNodes[id]
			if !ok {
				continue
			}
			sumLat += coord.Lat
			sumLon += coord.Lon
			n++
		}
		if n == 0 {
			continue
		}
		c.locations[wayName] = geo.NewCoordinate(sumLat/float64(n), sumLon/float64(n))
	}

	names := make([]string, 0, len(c.locations))
	for n := range c.locations {
		names = append(names, n)
	}
	sort.Strings(names)

	ds := &dataset.Dataset{Name: name, Locations: make([]dataset.Location, 0, len(names))}
	for _, n := range names {
		coord := c.locations[n]
		ds.Locations = append(ds.Locations, dataset.Location{Name: n, Lat: coord.Lat, Lon: coord.Lon})
	}
	return ds
}

func (p *POIExtractor) scan(ctx context.Context, r io.Reader, handle func(osm.Object)) error {
	scanner := osmpbf.New(ctx, r, p.workers)
	defer scanner.Close()

	for scanner.Scan() {
		handle(scanner.Object())
	}
	return scanner.Err()
}

// Extract. points of interest of an osm pbf file as a location dataset. the reader is scanned twice
// when named ways need their node coordinates.
func (p *POIExtractor) Extract(ctx context.Context, r io.ReadSeeker, name string) (*dataset.Dataset, error) {
	c := newPOICollector(p.filter)

	p.logger.Info("scanning openstreetmap objects for points of interest...")
	if err := p.scan(ctx, r, c.addObject); err != nil {
		return nil, fmt.Errorf("scan osm pbf: %w", err)
	}

	if c.needsSecondPass() {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		p.logger.Info("resolving way coordinates...", zap.Int("ways", len(c.ways)))
		if err := p.scan(ctx, r, c.addWayNode); err != nil {
			return nil, fmt.Errorf("scan osm pbf: %w", err)
		}
	}

	ds := c.result(name)
	p.logger.Info("points of interest extracted", zap.Int("locations", len(ds.Locations)),
		zap.Int("skippedDuplicates", c.duplicate))
	return ds, nil
}

func (p *POIExtractor) ExtractFile(ctx context.Context, mapFile, name string) (*dataset.Dataset, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Extract(ctx, f, name)
}
