package seeders

type locationSeed struct {
	Code string
	Name string
}

type departmentSeed struct {
	Code         string
	Name         string
	LocationName string
}

type emissionFactorSeed struct {
	Name      string
	Category  string
	Scope     string
	Unit      string
	Value     float64
	ValidFrom string
}

var locationsData = []locationSeed{
	{Code: "HQ", Name: "本社"},
	{Code: "OSA", Name: "大阪支社"},
	{Code: "NGO", Name: "名古屋工場"},
}

var departmentsData = []departmentSeed{
	{Code: "GA", Name: "総務部", LocationName: "本社"},
	{Code: "SALES", Name: "営業部", LocationName: "本社"},
	{Code: "GA-OSA", Name: "総務部", LocationName: "大阪支社"},
	{Code: "MFG", Name: "製造部", LocationName: "名古屋工場"},
}

var emissionFactorsData = []emissionFactorSeed{
	{Name: "電力", Category: "購入電力", Scope: "scope2", Unit: "kWh", Value: 0.000495, ValidFrom: "2024-01-01"},
	{Name: "都市ガス", Category: "燃料", Scope: "scope1", Unit: "m3", Value: 0.00224, ValidFrom: "2024-01-01"},
	{Name: "ガソリン", Category: "燃料", Scope: "scope1", Unit: "L", Value: 0.00232, ValidFrom: "2024-01-01"},
	{Name: "軽油", Category: "燃料", Scope: "scope1", Unit: "L", Value: 0.00258, ValidFrom: "2024-01-01"},
}
