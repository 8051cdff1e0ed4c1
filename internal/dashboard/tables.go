package dashboard

import "github.com/mohammed-shakir/pt-dashboard/internal/core/model"

type InstitutionRow struct {
	No            int    `json:"no"`
	Name          string `json:"nama_perguruan_tinggi"`
	Code          string `json:"kode_pts"`
	OperatingBody string `json:"badan_penyelenggara"`
	Accreditation string `json:"akreditasi_pt"`
	Programs      int    `json:"jumlah_prodi"`
}

type AddressRow struct {
	No      int    `json:"no"`
	Name    string `json:"nama_perguruan_tinggi"`
	Address string `json:"alamat"`
}

type FormRow struct {
	No   int    `json:"no"`
	Name string `json:"nama_perguruan_tinggi"`
	Form string `json:"bentuk_perguruan_tinggi"`
}

type RatioRow struct {
	No       int    `json:"no"`
	Name     string `json:"nama_perguruan_tinggi"`
	Students int    `json:"jumlah_mahasiswa"`
	Faculty  int    `json:"jumlah_dosen"`
	Ratio    string `json:"rasio_dosen"`
}

type ProgramRow struct {
	No       int    `json:"no"`
	Name     string `json:"nama_perguruan_tinggi"`
	Programs int    `json:"jumlah_prodi"`
}

func institutionTable(rows []model.Row) []InstitutionRow {
	out := make([]InstitutionRow, len(rows))
	for i, r := range rows {
		out[i] = InstitutionRow{
			No:            r.No,
			Name:          r.Name,
			Code:          r.Code,
			OperatingBody: r.OperatingBody,
			Accreditation: r.Accreditation,
			Programs:      r.Programs,
		}
	}
	return out
}

func addressTable(rows []model.Row) []AddressRow {
	out := make([]AddressRow, len(rows))
	for i, r := range rows {
		out[i] = AddressRow{No: r.No, Name: r.Name, Address: r.Address}
	}
	return out
}

func formTable(rows []model.Row) []FormRow {
	out := make([]FormRow, len(rows))
	for i, r := range rows {
		out[i] = FormRow{No: r.No, Name: r.Name, Form: r.Form}
	}
	return out
}

func ratioTable(rows []model.Row) []RatioRow {
	out := make([]RatioRow, len(rows))
	for i, r := range rows {
		out[i] = RatioRow{No: r.No, Name: r.Name, Students: r.Students, Faculty: r.Faculty, Ratio: r.FormatRatio()}
	}
	return out
}

func programTable(rows []model.Row) []ProgramRow {
	out := make([]ProgramRow, len(rows))
	for i, r := range rows {
		out[i] = ProgramRow{No: r.No, Name: r.Name, Programs: r.Programs}
	}
	return out
}
