// Package contract overlays internship records onto the two-page contract
// template.
//
// The template is a pre-printed PDF. Every value lands at a fixed position
// (millimeters, origin top-left, Letter page) described by a Layout: an
// ordered table of Rules. Plan evaluates the table against one Input and
// yields the Placements to draw; Render draws them on top of the imported
// template pages through a pdfs.Writer.
//
//	tpl, err := contract.LoadTemplate("pdf/AppStateInternshipContractNew.pdf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := contract.Generate(tpl, contract.Input{
//		Internship: internship,
//		Contacts:   contacts,
//		Term:       term,
//	}, contract.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = doc.WriteToFile("contract.pdf")
//
// Long addresses are split by character count, not at word boundaries, and
// anything beyond two lines simply overflows the printed box. Both are kept
// as-is: the coordinates are calibrated against this exact template.
package contract
