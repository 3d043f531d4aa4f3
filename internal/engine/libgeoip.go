//go:build libgeoip && cgo

package engine

/*
#cgo LDFLAGS: -lGeoIP
#include <stdlib.h>
#include <GeoIP.h>
#include <GeoIPCity.h>

static const char *db_description(int t) {
	if (t < 0 || t >= NUM_DB_TYPES)
		return NULL;
	return GeoIPDBDescription[t];
}
*/
import "C"

import (
	"unsafe"

	"github.com/TomasB/geoip/internal/capture"
)

var cacheFlags = map[CacheMode]C.int{
	Standard:    C.GEOIP_STANDARD,
	MemoryCache: C.GEOIP_MEMORY_CACHE,
	CheckCache:  C.GEOIP_CHECK_CACHE,
	IndexCache:  C.GEOIP_INDEX_CACHE,
	MMapCache:   C.GEOIP_MMAP_CACHE,
}

// LibGeoIP is an Engine backed by the legacy libGeoIP C library. The
// library prints open failures on the process's standard error, so its
// diagnostics are captured at the file descriptor level.
type LibGeoIP struct{}

// NewLibGeoIP returns an engine using libGeoIP.
func NewLibGeoIP() *LibGeoIP { return &LibGeoIP{} }

func (LibGeoIP) OpenPath(path string, mode CacheMode) DB {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	gi := C.GeoIP_open(cpath, cacheFlags[mode])
	if gi == nil {
		return nil
	}
	return &cdb{gi: gi}
}

func (LibGeoIP) OpenType(t DatabaseType, mode CacheMode) DB {
	gi := C.GeoIP_open_type(C.int(t), cacheFlags[mode])
	if gi == nil {
		return nil
	}
	return &cdb{gi: gi}
}

func (LibGeoIP) Description(t DatabaseType) string {
	return goString(C.db_description(C.int(t)))
}

func (LibGeoIP) NameByID(id int) string      { return goString(C.GeoIP_name_by_id(C.int(id))) }
func (LibGeoIP) CodeByID(id int) string      { return goString(C.GeoIP_code_by_id(C.int(id))) }
func (LibGeoIP) ContinentByID(id int) string { return goString(C.GeoIP_continent_by_id(C.int(id))) }

func (LibGeoIP) RegionNameByCode(countryCode, region string) string {
	cc, rc := C.CString(countryCode), C.CString(region)
	defer C.free(unsafe.Pointer(cc))
	defer C.free(unsafe.Pointer(rc))
	return goString(C.GeoIP_region_name_by_code(cc, rc))
}

func (LibGeoIP) TimeZoneByCountryAndRegion(countryCode, region string) string {
	cc, rc := C.CString(countryCode), C.CString(region)
	defer C.free(unsafe.Pointer(cc))
	defer C.free(unsafe.Pointer(rc))
	return goString(C.GeoIP_time_zone_by_country_and_region(cc, rc))
}

func (LibGeoIP) ReleaseRecord(r *Record) {
	if r == nil || r.native == nil {
		return
	}
	C.GeoIPRecord_delete((*C.GeoIPRecord)(r.native))
	r.native = nil
}

func (LibGeoIP) ReleaseRegion(r *Region) {
	if r == nil || r.native == nil {
		return
	}
	C.GeoIPRegion_delete((*C.GeoIPRegion)(r.native))
	r.native = nil
}

func (LibGeoIP) Diagnostics() capture.Redirector { return capture.Stderr }

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

type cdb struct {
	gi *C.GeoIP
}

func (d *cdb) DatabaseType() DatabaseType {
	return DatabaseType(C.GeoIP_database_edition(d.gi))
}

func (d *cdb) IDByName(name string) int {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return int(C.GeoIP_id_by_name(d.gi, cname))
}

func (d *cdb) RegionByName(name string) *Region {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	reg := C.GeoIP_region_by_name(d.gi, cname)
	if reg == nil {
		return nil
	}
	return &Region{
		CountryCode: C.GoString(&reg.country_code[0]),
		Region:      C.GoString(&reg.region[0]),
		native:      unsafe.Pointer(reg),
	}
}

func (d *cdb) RecordByName(name string) *Record {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	rec := C.GeoIP_record_by_name(d.gi, cname)
	if rec == nil {
		return nil
	}
	return &Record{
		CountryCode:   goString(rec.country_code),
		CountryName:   goString(rec.country_name),
		Region:        goString(rec.region),
		City:          goString(rec.city),
		PostalCode:    goString(rec.postal_code),
		Latitude:      float64(rec.latitude),
		Longitude:     float64(rec.longitude),
		ContinentCode: goString(rec.continent_code),
		native:        unsafe.Pointer(rec),
	}
}

func (d *cdb) Close() {
	C.GeoIP_delete(d.gi)
}
