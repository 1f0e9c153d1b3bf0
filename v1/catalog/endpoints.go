package catalog

import (
	"sort"

	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

// MaxInValues caps the number of values a set filter may carry.
const MaxInValues = 30

// AllVersions is the version value that aggregates every version of a technology.
const AllVersions = "ALL"

// OnlyNameFlag switches the catalog listings to bare names.
const OnlyNameFlag = "onlyname"

// report describes one technology report collection.
type report struct {
	name       string
	collection string
	dataField  string
}

var reports = []report{
	{name: "adoption", collection: "adoption", dataField: "adoption"},
	{name: "cwv", collection: "core_web_vitals", dataField: "vitals"},
	{name: "lighthouse", collection: "lighthouse", dataField: "lighthouse"},
	{name: "page-weight", collection: "page_weight", dataField: "pageWeight"},
	{name: "audits", collection: "audits", dataField: "audits"},
}

var endpoints = func() map[string]query.Endpoint {
	all := []query.Endpoint{
		technologies(),
		categories(),
		versions(),
		ranked("geos", "geo"),
		ranked("ranks", "rank"),
		reportsEndpoint(),
	}
	for _, r := range reports {
		all = append(all, technologyReport(r))
	}

	m := make(map[string]query.Endpoint, len(all))
	for _, e := range all {
		m[e.Name] = e
	}
	return m
}()

// Lookup returns the endpoint served under name.
func Lookup(name string) (query.Endpoint, bool) {
	e, ok := endpoints[name]
	return e, ok
}

// Names returns the names of all endpoints in lexical order.
func Names() []string {
	names := make([]string, 0, len(endpoints))
	for name := range endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func technologies() query.Endpoint {
	return query.Endpoint{
		Name:       "technologies",
		Collection: "technologies",
		Rules: []query.FieldRule{
			query.AnyOf("technology", "technology").WithMax(MaxInValues),
			query.ContainsAny("category", "category_obj").WithMax(MaxInValues),
		},
		Sort:       query.SortAsc("technology"),
		Projection: query.PickFields("technology", "category", "description", "icon", "origins"),
		Views: []query.View{{
			Flag:       OnlyNameFlag,
			Select:     []string{"technology"},
			Projection: query.FieldValues("technology", false),
		}},
	}
}

func categories() query.Endpoint {
	return query.Endpoint{
		Name:       "categories",
		Collection: "categories",
		Rules: []query.FieldRule{
			query.AnyOf("category", "category").WithMax(MaxInValues),
		},
		Sort:       query.SortAsc("category"),
		Projection: query.FullDocuments(),
		Views: []query.View{{
			Flag:       OnlyNameFlag,
			Select:     []string{"category"},
			Projection: query.FieldValues("category", false),
		}},
	}
}

func versions() query.Endpoint {
	return query.Endpoint{
		Name:       "versions",
		Collection: "versions",
		Rules: []query.FieldRule{
			query.AnyOf("technology", "technology").WithMax(MaxInValues),
		},
		Projection: query.FullDocuments(),
	}
}

// ranked lists the values of field ordered by origin count.
func ranked(collection, field string) query.Endpoint {
	return query.Endpoint{
		Name:       collection,
		Collection: collection,
		Sort:       query.SortDesc("mobile_origins"),
		Select:     query.StaticSelect(field),
		Projection: query.PickFields(field),
	}
}

func reportsEndpoint() query.Endpoint {
	return query.Endpoint{
		Name:       "reports",
		Collection: "reports",
		Rules: []query.FieldRule{
			{Key: "start", Field: "date", Comparator: query.GreaterOrEqual},
			{Key: "end", Field: "date", Comparator: query.LessThan},
			query.Match("category", "category"),
			query.Match("geo", "geo"),
		},
		Projection: query.FullDocuments(),
	}
}

func technologyReport(r report) query.Endpoint {
	rules := []query.FieldRule{
		query.Match("geo", "geo").AsRequired(),
		query.Match("rank", "rank").AsRequired(),
		query.AnyOf("technology", "technology").AsRequired().WithMax(MaxInValues).WithFanOut(),
		query.AnyOf("version", "version").WithMax(MaxInValues).WithDefault(AllVersions),
	}
	rules = append(rules, query.DateRange("date")...)

	dataField := r.dataField
	return query.Endpoint{
		Name:       r.name,
		Collection: r.collection,
		Rules:      rules,
		Normalize:  pinVersion,
		Select: func(params query.ParameterSet) []string {
			fields := []string{"date", "technology", dataField}
			if !allVersions(params) {
				fields = append(fields, "version")
			}
			return fields
		},
		Projection: query.FullDocuments(),
	}
}

// pinVersion keeps the version filter only when exactly one technology is
// requested; otherwise the aggregate ALL rows are read.
func pinVersion(params query.ParameterSet) query.ParameterSet {
	if len(query.SplitValues(params.Get("technology"))) == 1 && params.Get("version") != "" {
		return params
	}
	return params.With("version", AllVersions)
}

func allVersions(params query.ParameterSet) bool {
	v := query.SplitValues(params.Get("version"))
	return len(v) == 0 || (len(v) == 1 && v[0] == AllVersions)
}
