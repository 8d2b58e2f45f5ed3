package leadcsv

import "strings"

// SampleFilename is the download name for SampleCSV.
const SampleFilename = "sample_leads.csv"

var sampleRows = []string{
	"name,email,company,industry,budget,location",
	"Ava Johnson,ava.johnson@greenleaflabs.com,GreenLeaf Labs,Software,75000,San Francisco, CA",
	"Liam Smith,liam.smith@skyline.systems, Skyline Systems,Marketing,25000,New York, NY",
	"Olivia Brown,olivia.brown@novareachmarketing.com,NovaReach Marketing,E-commerce,42000,Austin, TX",
}

// SampleCSV returns a small import file that Parse accepts in full.
// Locations contain an unquoted comma, so the state spills into an
// ignored trailing column.
func SampleCSV() string {
	return strings.Join(sampleRows, "\n")
}
