package enroll

// AboutInfo holds the static informational texts behind the about submenu.
type AboutInfo struct {
	Branches string `yaml:"branches"`
	Teachers string `yaml:"teachers"`
}

// DefaultAboutInfo returns the built-in branch and teacher listings.
func DefaultAboutInfo() AboutInfo {
	return AboutInfo{
		Branches: "1. Samarqand shahar, Firdavsiy 1/5 (Infin Bank)\n" +
			"2. Samarqand shahar, Sattepo 55-maktab\n" +
			"3. Samarqand shahar, Vagzal 139 (Rich burger)",
		Teachers: "1. KHamroyeva Kumush - English (7.5 IELTS)\n" +
			"2. Salimov Sardor - IT (Microsoft Sertifikat) \n" +
			"3. Qo'chqorov Zoir - Math (A+ Sertifikat)\n" +
			"4. Alisherov Akramboy - Math (A Sertifikat)",
	}
}
