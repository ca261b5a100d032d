package payment

import "strings"

const (
	MethodYape     = "YAPE"
	MethodPlin     = "PLIN"
	MethodTransfer = "TRANSFERENCIA"
)

var InstructionMap = map[string][]string{
	MethodYape: {
		"Abre la app de Yape",
		"Escanea el código QR de la campaña o yapea al {{phone}}",
		"Verifica que el monto sea {{amount}}",
		"Confirma el pago y toma captura del comprobante",
		"Adjunta la captura en el formulario de pedido",
	},

	MethodPlin: {
		"Abre la app de tu banco con Plin",
		"Envía el pago al número {{phone}}",
		"Verifica que el monto sea {{amount}}",
		"Confirma el pago y toma captura del comprobante",
		"Adjunta la captura en el formulario de pedido",
	},

	MethodTransfer: {
		"Realiza una transferencia a la cuenta {{account}}",
		"Verifica que el monto sea {{amount}}",
		"Guarda la constancia de la operación",
		"Adjunta la constancia en el formulario de pedido",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Sigue las instrucciones de pago que aparecen en esta página",
	}
}

type InstructionVars map[string]string

func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}
