package entity

import "time"

// Request solicitud de mantenimiento opcionalmente vinculada a una salida.
// Se crea a lo sumo una vez por salida, antes de la cabecera de la salida.
type Request struct {
	ID          string
	TypeCode    string
	Description string
	Requester   string
	Location    string
	CreatedAt   time.Time
}

// RequestType tipo de solicitud del catálogo. La resolución es por código
// exacto y, si no hay coincidencia, por subcadena en la descripción.
type RequestType struct {
	Code        string
	Description string
}
