package pytool

// VenvPythonFor exposes venvPythonFor for tests in the pytool_test package.
var VenvPythonFor = venvPythonFor
