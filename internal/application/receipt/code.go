package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Los códigos de recepción son legibles y secuenciales por día calendario:
// PN-20240131-01, PN-20240131-02, ... La secuencia se deriva del mayor
// código persistido del día, leído dentro de la transacción que inserta,
// para que varias instancias del servicio no dupliquen números.

func dayPrefix(day time.Time) string {
	return "PN-" + day.Format("20060102")
}

// nextCode calcula el siguiente código a partir del último del día ("" si el
// día aún no tiene recepciones).
func nextCode(latest string, day time.Time) string {
	seq := 1
	if latest != "" {
		parts := strings.Split(latest, "-")
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%02d", dayPrefix(day), seq)
}
