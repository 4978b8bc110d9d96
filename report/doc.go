// Package report renders analyzer results as human-readable text.
//
// [BuildFullReport] prints the general statistics of a definition followed
// by an OpenAPI feature table and a ReadMe extension table. Each row shows
// whether the feature is used, its description, and a documentation link
// for the OpenAPI minor version of the document.
//
// [BuildFeatureReport] restricts the output to requested feature keys and
// lists every location a feature occurs at. Requesting a feature the
// document does not use is a soft failure: the report is still returned,
// and [FeatureReport.SoftError] gives the caller an error to exit with.
//
//	result, err := analyzer.Analyze(doc)
//	if err != nil {
//		return err
//	}
//	fr, err := report.BuildFeatureReport(result, []string{"webhooks", "readme"})
//	if err != nil {
//		return err
//	}
//	fmt.Print(fr.Report)
//	return fr.SoftError()
package report
