package mailer

import "fmt"

// CorpoConvite é o e-mail de convite com o código de primeiro acesso.
func CorpoConvite(nomeCompleto, codigo, baseURL string) (assunto, corpo string) {
	assunto = "Convite para a Plataforma de Seleção de Projetos"
	corpo = fmt.Sprintf(`
<p>Olá %s,</p>
<p>Você foi convidado para utilizar a <strong>Plataforma de Seleção de Projetos</strong>.</p>
<p>Para realizar seu cadastro, acesse o link abaixo e clique em <strong>"Primeiro acesso"</strong>:</p>
<p><a href="%s">Acesse aqui a Plataforma</a></p>
<p>Insira o seu <strong>e-mail</strong> e o <strong>código</strong> abaixo:</p>
<h2>%s</h2>
<p>Se tiver alguma dúvida, entre em contato com a equipe.</p>
`, nomeCompleto, baseURL, codigo)
	return assunto, corpo
}

// CorpoCodigoVerificacao é o e-mail de redefinição de senha.
func CorpoCodigoVerificacao(codigo string) (assunto, corpo string) {
	assunto = fmt.Sprintf("Código de Verificação - Seleção de Projetos: %s", codigo)
	corpo = fmt.Sprintf(`
<p style='font-size: 1.5em;'>
    Seu código para redefinição é: <strong>%s</strong>
</p>
`, codigo)
	return assunto, corpo
}
