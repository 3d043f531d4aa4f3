package engine

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/TomasB/geoip/internal/capture"
	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
)

var _ Engine = (*MaxMind)(nil)

// DefaultDataDir is where OpenType looks for database files.
const DefaultDataDir = "/usr/share/GeoIP"

const defaultResolveTimeout = 5 * time.Second

// defaultFiles names the file OpenType tries for each database type.
var defaultFiles = map[DatabaseType]string{
	CountryEdition:    "GeoLite2-Country.mmdb",
	CityEditionRev1:   "GeoLite2-City.mmdb",
	RegionEditionRev1: "GeoIP2-Region.mmdb",
}

// Resolver resolves host names to addresses. *net.Resolver satisfies it.
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// Option configures a MaxMind engine.
type Option func(*MaxMind)

// WithDataDir sets the directory OpenType searches.
func WithDataDir(dir string) Option {
	return func(m *MaxMind) { m.dataDir = dir }
}

// WithResolver sets the resolver used for names that are not IP literals.
func WithResolver(r Resolver) Option {
	return func(m *MaxMind) { m.resolver = r }
}

// WithResolveTimeout bounds a single host name resolution.
func WithResolveTimeout(d time.Duration) Option {
	return func(m *MaxMind) { m.resolveTimeout = d }
}

// WithDiagnostics sets where diagnostics go when nothing captures them.
func WithDiagnostics(w io.Writer) Option {
	return func(m *MaxMind) { m.diag = capture.NewWriterSlot(w) }
}

// MaxMind is an Engine reading MaxMind DB (.mmdb) files.
type MaxMind struct {
	dataDir        string
	resolver       Resolver
	resolveTimeout time.Duration
	diag           *capture.WriterSlot

	records sync.Pool
	regions sync.Pool

	// places holds what decoded records said about each subdivision, keyed
	// by placeKey.
	places sync.Map
}

// place is the time zone and English name of a subdivision as found in the
// database.
type place struct {
	zone string
	name string
}

func placeKey(countryCode, region string) string {
	return countryCode + "/" + region
}

// learn remembers zone and name for a subdivision. Empty values never
// replace known ones.
func (m *MaxMind) learn(countryCode, region, zone, name string) {
	if countryCode == "" || (zone == "" && name == "") {
		return
	}
	key := placeKey(countryCode, region)
	p := place{zone: zone, name: name}
	if v, ok := m.places.Load(key); ok {
		old := v.(place)
		if p.zone == "" {
			p.zone = old.zone
		}
		if p.name == "" {
			p.name = old.name
		}
		if p == old {
			return
		}
	}
	m.places.Store(key, p)
}

func (m *MaxMind) lookupPlace(countryCode, region string) place {
	if v, ok := m.places.Load(placeKey(countryCode, region)); ok {
		return v.(place)
	}
	return place{}
}

// NewMaxMind returns a MaxMind engine.
func NewMaxMind(opts ...Option) *MaxMind {
	m := &MaxMind{
		dataDir:        DefaultDataDir,
		resolver:       net.DefaultResolver,
		resolveTimeout: defaultResolveTimeout,
		diag:           capture.NewWriterSlot(os.Stderr),
	}
	m.records.New = func() any { return new(Record) }
	m.regions.New = func() any { return new(Region) }
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var (
	defaultOnce   sync.Once
	defaultEngine *MaxMind
)

// Default returns the process-wide MaxMind engine with default settings.
func Default() *MaxMind {
	defaultOnce.Do(func() { defaultEngine = NewMaxMind() })
	return defaultEngine
}

// OpenPath opens the MMDB file at path.
func (m *MaxMind) OpenPath(path string, mode CacheMode) DB {
	db, err := m.open(path, mode)
	if err != nil {
		fmt.Fprintf(m.diag, "Error Opening file %s: %v\n", path, err)
		return nil
	}
	return db
}

// OpenType opens the default file for t inside the data directory.
func (m *MaxMind) OpenType(t DatabaseType, mode CacheMode) DB {
	name, ok := defaultFiles[t]
	if !ok {
		fmt.Fprintf(m.diag, "Invalid database type %d\n", int(t))
		return nil
	}
	return m.OpenPath(filepath.Join(m.dataDir, name), mode)
}

func (m *MaxMind) open(path string, mode CacheMode) (*mmdb, error) {
	var (
		b     []byte
		unmap func() error
		err   error
	)
	if mode == MemoryCache {
		b, err = os.ReadFile(path)
	} else {
		b, unmap, err = mapFile(path)
	}
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*mmdb, error) {
		if unmap != nil {
			unmap()
		}
		return nil, err
	}

	mm, err := maxminddb.FromBytes(b)
	if err != nil {
		return fail(err)
	}
	db := &mmdb{engine: m, mm: mm, unmap: unmap, dbType: databaseTypeOf(mm.Metadata.DatabaseType)}
	if db.dbType == CountryEdition || db.dbType == CityEditionRev1 {
		// both readers only read from b, so they share one mapping
		if db.geo, err = geoip2.FromBytes(b); err != nil {
			mm.Close()
			return fail(err)
		}
	}
	return db, nil
}

// databaseTypeOf maps MMDB metadata to a DatabaseType.
func databaseTypeOf(name string) DatabaseType {
	switch {
	case strings.Contains(name, "City"), strings.Contains(name, "Enterprise"):
		return CityEditionRev1
	case strings.Contains(name, "Country"):
		return CountryEdition
	case strings.Contains(name, "Region"):
		return RegionEditionRev1
	case strings.Contains(name, "ISP"):
		return ISPEdition
	case strings.Contains(name, "ASN"):
		return ASNumEdition
	case strings.Contains(name, "Domain"):
		return DomainEdition
	case strings.Contains(name, "Anonymous-IP"):
		return ProxyEdition
	case strings.Contains(name, "Connection-Type"):
		return NetSpeedEdition
	default:
		return UnknownEdition
	}
}

func (m *MaxMind) Description(t DatabaseType) string { return Describe(t) }

func (m *MaxMind) NameByID(id int) string      { return CountryName(id) }
func (m *MaxMind) CodeByID(id int) string      { return CountryCode(id) }
func (m *MaxMind) ContinentByID(id int) string { return CountryContinent(id) }

// RegionNameByCode prefers the name the database gave for the subdivision
// and falls back to the static table.
func (m *MaxMind) RegionNameByCode(countryCode, region string) string {
	if region == "" {
		return ""
	}
	if name := m.lookupPlace(countryCode, region).name; name != "" {
		return name
	}
	return RegionName(countryCode, region)
}

// TimeZoneByCountryAndRegion prefers the zone the database gave for the
// subdivision and falls back to the static tables.
func (m *MaxMind) TimeZoneByCountryAndRegion(countryCode, region string) string {
	if zone := m.lookupPlace(countryCode, region).zone; zone != "" {
		return zone
	}
	return TimeZone(countryCode, region)
}

// ReleaseRecord returns r to the engine. r must not be used afterwards.
func (m *MaxMind) ReleaseRecord(r *Record) {
	if r == nil {
		return
	}
	*r = Record{}
	m.records.Put(r)
}

// ReleaseRegion returns r to the engine. r must not be used afterwards.
func (m *MaxMind) ReleaseRegion(r *Region) {
	if r == nil {
		return
	}
	*r = Region{}
	m.regions.Put(r)
}

func (m *MaxMind) Diagnostics() capture.Redirector { return m.diag }

// resolve turns a host name or IP literal into an address.
func (m *MaxMind) resolve(name string) net.IP {
	ctx, cancel := context.WithTimeout(context.Background(), m.resolveTimeout)
	defer cancel()
	return ResolveIP(ctx, m.resolver, name)
}

// ResolveIP turns a host name or IP literal into an address, preferring
// IPv4. It returns nil when name cannot be resolved.
func ResolveIP(ctx context.Context, r Resolver, name string) net.IP {
	if ip := net.ParseIP(name); ip != nil {
		return ip
	}
	if name == "" || r == nil {
		return nil
	}
	ips, err := r.LookupIP(ctx, "ip", name)
	if err != nil || len(ips) == 0 {
		return nil
	}
	// prefer IPv4, which every database carries
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4
		}
	}
	return ips[0]
}

// regionRecord is the part of an MMDB record a region query needs.
type regionRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
	Location struct {
		TimeZone string `maxminddb:"time_zone"`
	} `maxminddb:"location"`
	Subdivisions []struct {
		ISOCode string            `maxminddb:"iso_code"`
		Names   map[string]string `maxminddb:"names"`
	} `maxminddb:"subdivisions"`
}

// mmdb is one open MaxMind database.
type mmdb struct {
	engine *MaxMind
	dbType DatabaseType
	mm     *maxminddb.Reader
	geo    *geoip2.Reader
	unmap  func() error
}

func (d *mmdb) DatabaseType() DatabaseType { return d.dbType }

// found reports whether the database holds a record for ip.
func (d *mmdb) found(ip net.IP) bool {
	var probe struct{}
	_, ok, err := d.mm.LookupNetwork(ip, &probe)
	if err != nil {
		fmt.Fprintf(d.engine.diag, "Lookup of %s failed: %v\n", ip, err)
		return false
	}
	return ok
}

func (d *mmdb) IDByName(name string) int {
	ip := d.engine.resolve(name)
	if ip == nil || d.geo == nil || !d.found(ip) {
		return 0
	}
	rec, err := d.geo.Country(ip)
	if err != nil {
		fmt.Fprintf(d.engine.diag, "Lookup of %s failed: %v\n", name, err)
		return 0
	}
	return CountryID(rec.Country.IsoCode)
}

func (d *mmdb) RegionByName(name string) *Region {
	ip := d.engine.resolve(name)
	if ip == nil {
		return nil
	}
	var rec regionRecord
	_, ok, err := d.mm.LookupNetwork(ip, &rec)
	if err != nil {
		fmt.Fprintf(d.engine.diag, "Lookup of %s failed: %v\n", name, err)
		return nil
	}
	if !ok {
		return nil
	}
	r := d.engine.regions.Get().(*Region)
	r.CountryCode = rec.Country.ISOCode
	var name string
	if len(rec.Subdivisions) > 0 {
		r.Region = rec.Subdivisions[0].ISOCode
		name = rec.Subdivisions[0].Names["en"]
	}
	d.engine.learn(r.CountryCode, r.Region, rec.Location.TimeZone, name)
	return r
}

func (d *mmdb) RecordByName(name string) *Record {
	ip := d.engine.resolve(name)
	if ip == nil || d.geo == nil || !d.found(ip) {
		return nil
	}
	city, err := d.geo.City(ip)
	if err != nil {
		fmt.Fprintf(d.engine.diag, "Lookup of %s failed: %v\n", name, err)
		return nil
	}
	r := d.engine.records.Get().(*Record)
	r.CountryCode = city.Country.IsoCode
	r.CountryName = city.Country.Names["en"]
	r.City = city.City.Names["en"]
	r.PostalCode = city.Postal.Code
	r.Latitude = city.Location.Latitude
	r.Longitude = city.Location.Longitude
	r.ContinentCode = city.Continent.Code
	var name string
	if len(city.Subdivisions) > 0 {
		r.Region = city.Subdivisions[0].IsoCode
		name = city.Subdivisions[0].Names["en"]
	}
	d.engine.learn(r.CountryCode, r.Region, city.Location.TimeZone, name)
	return r
}

func (d *mmdb) Close() {
	if d.geo != nil {
		d.geo.Close()
	}
	d.mm.Close()
	if d.unmap != nil {
		d.unmap()
	}
}
