package models

// Usuario is a roleplay character record. Cedula is the unique natural key
// used in URLs and cache keys; ID stays internal. JSON tags double as the
// cache serialization format, so changing them invalidates nothing silently:
// old cached entries simply age out within the TTL.
type Usuario struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Nacionalidad    string `json:"nacionalidad"`
	Estatura        string `json:"estatura"`
	FechaNacimiento Date   `json:"fecha_nacimiento"`
	Edad            int    `json:"edad"`
	Cedula          string `json:"cedula"`
}
