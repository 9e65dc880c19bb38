package utils

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson devolve o conteúdo indentado com tabs. O MarshalIndent do jsoniter só aceita espaços,
// então a serialização fica com o jsoniter e a indentação com o encoding/json.
func PrettyJson(in any) string {
	raw, ok := in.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(in)
		if err != nil {
			logrus.Warn("PrettyJson: erro ao serializar: ", err)
			return ""
		}
	}

	var out bytes.Buffer
	if err := stdjson.Indent(&out, raw, "", "\t"); err != nil {
		logrus.Warn("PrettyJson: conteúdo não é JSON válido: ", err)
		return string(raw)
	}

	return out.String()
}
