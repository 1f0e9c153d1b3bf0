// Package catalog declares the endpoints of the tech report API as
// query.Endpoint tables.
//
// Listing endpoints (technologies, categories, versions, geos, ranks) filter
// small reference collections. Technology report endpoints (adoption, cwv,
// lighthouse, page-weight, audits) require geo, rank and technology, fan the
// technology list out into one store query per technology and accept
// start=latest.
//
//	endpoint, ok := catalog.Lookup("adoption")
//	result, err := translator.Run(ctx, endpoint, params)
package catalog
