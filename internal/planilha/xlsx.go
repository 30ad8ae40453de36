package planilha

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// LerXLSX devolve as linhas da primeira aba de um arquivo XLSX enviado
// pelo operador. A primeira linha é o cabeçalho.
func LerXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir a planilha: %w", err)
	}
	defer f.Close()

	abas := f.GetSheetList()
	if len(abas) == 0 {
		return nil, fmt.Errorf("planilha sem abas")
	}

	linhas, err := f.GetRows(abas[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a planilha: %w", err)
	}
	return linhas, nil
}

// GerarModelo monta um arquivo XLSX só com a linha de cabeçalho, pronto
// para o operador preencher e reenviar.
func GerarModelo(cabecalhos []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	aba := f.GetSheetName(0)
	for i, titulo := range cabecalhos {
		celula, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(aba, celula, titulo); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o modelo: %w", err)
	}
	return buf.Bytes(), nil
}
